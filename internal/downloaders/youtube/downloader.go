package youtube

import (
	"context"
	"errors"
	"net/http"

	"github.com/StounhandJ/luck_xit/internal/downloaders"
	"github.com/StounhandJ/luck_xit/internal/utils"
	"github.com/kkdai/youtube/v2"
)

var domains = []string{"youtube.com/", "youtu.be/"}

var ErrNoThumbnail = errors.New("не найдено ThumbnailURL")

type downloader struct {
	client *youtube.Client
}

// New метаданные YouTube без вызова yt-dlp
func New(client *http.Client) downloaders.IDownloader {
	return &downloader{
		client: &youtube.Client{
			HTTPClient: client,
		},
	}
}

func (d downloader) Download(ctx context.Context, url string) (*downloaders.Media, error) {
	youtubeVideo, err := d.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, err
	}

	return toMedia(youtubeVideo)
}

func toMedia(youtubeVideo *youtube.Video) (*downloaders.Media, error) {
	if len(youtubeVideo.Thumbnails) == 0 {
		return nil, ErrNoThumbnail
	}

	return &downloaders.Media{
		Kind:         downloaders.KindVideo,
		Platform:     downloaders.PlatformOther,
		Title:        utils.StringNotEmptyCoalesce(youtubeVideo.Title, "Sin título"),
		ThumbnailURL: youtubeVideo.Thumbnails[len(youtubeVideo.Thumbnails)-1].URL,
		Author:       utils.StringNotEmptyCoalesce(youtubeVideo.Author, "Desconocido"),
		Duration:     downloaders.Float64(youtubeVideo.Duration.Seconds()),
		ViewCount:    downloaders.Int64(int64(youtubeVideo.Views)),
	}, nil
}

func (downloader) Valid(url string) bool {
	return utils.ContainsFold(url, domains...)
}
