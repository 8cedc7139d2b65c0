package tiktok

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/StounhandJ/luck_xit/internal/downloaders"
	"github.com/stretchr/testify/require"
)

const videoResponse = `{
	"code": 0,
	"msg": "success",
	"processed_time": 0.12,
	"data": {
		"id": "742",
		"title": "dance",
		"cover": "/video/cover/742.webp",
		"duration": 15,
		"play": "https://cdn.example.com/play.mp4",
		"hdplay": "https://cdn.example.com/hd.mp4",
		"music": "https://cdn.example.com/fallback.mp3",
		"music_info": {"id": "1", "title": "song", "play": "/music/1.mp3", "original": true, "extra": {"a": [1, 2]}},
		"play_count": 1000,
		"digg_count": 10,
		"comment_count": 2,
		"share_count": 3,
		"author": {"id": "9", "unique_id": "dancer", "nickname": "D"},
		"images": null,
		"anchors": [{"id": "x"}]
	}
}`

const galleryResponse = `{
	"code": 0,
	"msg": "success",
	"data": {
		"title": "",
		"images": ["https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg"],
		"digg_count": 5,
		"music_info": {"title": "bgm", "play": "https://cdn.example.com/bgm.mp3"},
		"author": {"unique_id": ""}
	}
}`

func newAPI(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "https://www.tiktok.com/@u/video/742", r.PostForm.Get("url"))
		require.Equal(t, "1", r.PostForm.Get("hd"))

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestValid(t *testing.T) {
	cases := map[string]bool{
		"https://www.tiktok.com/@u/video/1":   true,
		"https://VM.TIKTOK.COM/ZMabc/":        true,
		"https://vt.tiktok.com/ZSabc/":        true,
		"HTTPS://WWW.TikTok.Com/@u":           true,
		"https://www.youtube.com/watch?v=abc": false,
		"https://tiktokfake.org/video":        false,
		"":                                    false,
	}

	for url, want := range cases {
		require.Equal(t, want, Valid(url), url)
	}
}

func TestDownloadVideo(t *testing.T) {
	srv := newAPI(t, http.StatusOK, videoResponse)
	d := New(srv.Client(), srv.URL+"/api/", time.Second)

	media, err := d.Download(context.Background(), "https://www.tiktok.com/@u/video/742")
	require.NoError(t, err)

	require.Equal(t, downloaders.KindVideo, media.Kind)
	require.Equal(t, downloaders.PlatformTikTok, media.Platform)
	require.Equal(t, "dance", media.Title)
	require.Equal(t, "https://cdn.example.com/hd.mp4", media.VideoURL)
	require.Equal(t, srv.URL+"/video/cover/742.webp", media.ThumbnailURL)
	require.Equal(t, srv.URL+"/music/1.mp3", media.AudioURL)
	require.Equal(t, "dancer", media.Author)
	require.Equal(t, 15.0, *media.Duration)
	require.Equal(t, int64(1000), *media.ViewCount)
	require.Equal(t, int64(10), *media.LikeCount)
	require.Equal(t, int64(2), *media.CommentCount)
	require.Equal(t, int64(3), *media.ShareCount)
	require.Empty(t, media.Images)
}

func TestDownloadVideoFallsBackToPlay(t *testing.T) {
	srv := newAPI(t, http.StatusOK, `{"code":0,"data":{"play":"https://cdn.example.com/sd.mp4","music":"https://cdn.example.com/m.mp3"}}`)
	d := New(srv.Client(), srv.URL+"/api/", time.Second)

	media, err := d.Download(context.Background(), "https://www.tiktok.com/@u/video/742")
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/sd.mp4", media.VideoURL)
	require.Equal(t, "https://cdn.example.com/m.mp3", media.AudioURL)
	require.Equal(t, "Video de TikTok", media.Title)
	require.Equal(t, "Desconocido", media.Author)
}

func TestDownloadGallery(t *testing.T) {
	srv := newAPI(t, http.StatusOK, galleryResponse)
	d := New(srv.Client(), srv.URL+"/api/", time.Second)

	media, err := d.Download(context.Background(), "https://www.tiktok.com/@u/video/742")
	require.NoError(t, err)

	require.Equal(t, downloaders.KindGallery, media.Kind)
	require.Len(t, media.Images, 2)
	require.Equal(t, media.Images[0], media.ThumbnailURL)
	require.Equal(t, "Galería de TikTok", media.Title)
	require.Equal(t, "bgm", media.MusicTitle)
	require.Equal(t, "https://cdn.example.com/bgm.mp3", media.AudioURL)
	require.Empty(t, media.VideoURL)
}

func TestDownloadErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		err    error
	}{
		{"status", http.StatusBadGateway, `{}`, ErrStatus},
		{"rate limit", http.StatusOK, `{"code":-1,"msg":"Free Api Limit: 1 request/second."}`, ErrRateLimit},
		{"parse failed", http.StatusOK, `{"code":-1,"msg":"Url parsing is failed! Please check url."}`, ErrParse},
		{"unknown", http.StatusOK, `{"code":-2,"msg":"boom"}`, ErrUnknown},
		{"broken json", http.StatusOK, `{"code":`, ErrParse},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newAPI(t, tc.status, tc.body)
			d := New(srv.Client(), srv.URL+"/api/", time.Second)

			media, err := d.Download(context.Background(), "https://www.tiktok.com/@u/video/742")
			require.ErrorIs(t, err, tc.err)
			require.Nil(t, media)
		})
	}
}

func TestDownloadNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	d := New(http.DefaultClient, srv.URL+"/api/", time.Second)

	_, err := d.Download(context.Background(), "https://www.tiktok.com/@u/video/742")
	require.Error(t, err)
}
