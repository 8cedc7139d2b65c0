package ytdlp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/StounhandJ/luck_xit/internal/downloaders"
	"github.com/StounhandJ/luck_xit/internal/storage"
	"github.com/stretchr/testify/require"
)

// fakeRunner запоминает аргументы и выполняет side, если задан
type fakeRunner struct {
	calls [][]string
	out   []byte
	err   error
	side  func(args []string) []byte
}

func (f *fakeRunner) Run(_ context.Context, args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)

	if f.err != nil {
		return nil, f.err
	}

	if f.side != nil {
		return f.side(args), nil
	}

	return f.out, nil
}

func argValue(args []string, name string) string {
	for i, a := range args {
		if a == name && i+1 < len(args) {
			return args[i+1]
		}
	}

	return ""
}

func TestOptionsArgs(t *testing.T) {
	dir := "/tmp/index99/media"

	video := PreviewVideo(dir, "preview_video_1").Args()
	require.Equal(t, "worst[ext=mp4]/worst", argValue(video, "-f"))
	require.Equal(t, filepath.Join(dir, "preview_video_1.%(ext)s"), argValue(video, "-o"))
	require.NotContains(t, video, "-x")

	audio := PreviewAudio(dir, "preview_audio_1").Args()
	require.Equal(t, "bestaudio/best", argValue(audio, "-f"))
	require.Contains(t, audio, "-x")
	require.Equal(t, "mp3", argValue(audio, "--audio-format"))
	require.Equal(t, "64K", argValue(audio, "--audio-quality"))

	finalAudio := FinalAudio(dir, "luck_xit_1").Args()
	require.Equal(t, "192K", argValue(finalAudio, "--audio-quality"))

	finalVideo := FinalVideo(dir, "luck_xit_1").Args()
	require.Equal(t, "best[ext=mp4]/best", argValue(finalVideo, "-f"))
	require.Equal(t, "mp4", argValue(finalVideo, "--merge-output-format"))
	require.Equal(t, "mp4", argValue(finalVideo, "--remux-video"))
}

func TestFetchUsesPrintedPath(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{side: func(args []string) []byte {
		tmpl := argValue(args, "-o")
		path := strings.Replace(tmpl, "%(ext)s", "mp4", 1)
		require.NoError(t, os.WriteFile(path, []byte("v"), 0o644))

		return []byte("some noise\n" + path + "\n")
	}}

	path, err := NewWithRunner(runner).Fetch(context.Background(), "https://example.com/v", FinalVideo(dir, "luck_xit_1"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "luck_xit_1.mp4"), path)

	args := runner.calls[0]
	require.Equal(t, "after_move:filepath", argValue(args, "--print"))
	require.Contains(t, args, "--no-simulate")
	require.Equal(t, "--", args[len(args)-2])
	require.Equal(t, "https://example.com/v", args[len(args)-1])
}

func TestFetchFallsBackToPrefixScan(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{side: func(args []string) []byte {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "preview_video_7.webm"), []byte("v"), 0o644))

		return nil
	}}

	path, err := NewWithRunner(runner).Fetch(context.Background(), "https://example.com/v", PreviewVideo(dir, "preview_video_7"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "preview_video_7.webm"), path)
}

func TestFetchIgnoresPathsOutsideDir(t *testing.T) {
	dir := t.TempDir()
	other := filepath.Join(t.TempDir(), "luck_xit_1.mp3")
	require.NoError(t, os.WriteFile(other, nil, 0o644))

	runner := &fakeRunner{out: []byte(other + "\n")}

	_, err := NewWithRunner(runner).Fetch(context.Background(), "https://example.com/v", FinalAudio(dir, "luck_xit_1"))
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFetchRunnerError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1")}

	_, err := NewWithRunner(runner).Fetch(context.Background(), "https://example.com/v", FinalAudio(t.TempDir(), "x"))
	require.Error(t, err)
}

func TestDownloadInspectsMetadata(t *testing.T) {
	runner := &fakeRunner{out: []byte(`{
		"id": "abc",
		"title": "Clip",
		"thumbnail": "https://img.example.com/default.jpg",
		"thumbnails": [{"url": "https://img.example.com/small.jpg", "width": 10}, {"url": "https://img.example.com/big.jpg"}],
		"duration": 12.5,
		"uploader": "someone",
		"view_count": 42,
		"like_count": null,
		"formats": [{"format_id": "18"}]
	}`)}

	media, err := NewWithRunner(runner).Download(context.Background(), "https://example.com/v")
	require.NoError(t, err)

	require.Equal(t, downloaders.PlatformOther, media.Platform)
	require.Equal(t, downloaders.KindVideo, media.Kind)
	require.Equal(t, "Clip", media.Title)
	require.Equal(t, "https://img.example.com/big.jpg", media.ThumbnailURL)
	require.Equal(t, 12.5, *media.Duration)
	require.Equal(t, "someone", media.Author)
	require.Equal(t, int64(42), *media.ViewCount)
	require.Nil(t, media.LikeCount)

	require.Contains(t, runner.calls[0], "-J")
	require.Contains(t, runner.calls[0], "--skip-download")
}

func TestDownloadDefaults(t *testing.T) {
	runner := &fakeRunner{out: []byte(`{"thumbnail": "https://img.example.com/t.jpg", "duration": null}`)}

	media, err := NewWithRunner(runner).Download(context.Background(), "https://example.com/v")
	require.NoError(t, err)
	require.Equal(t, "Sin título", media.Title)
	require.Equal(t, "Desconocido", media.Author)
	require.Equal(t, "https://img.example.com/t.jpg", media.ThumbnailURL)
	require.Nil(t, media.Duration)
	require.Nil(t, media.ViewCount)
}

func TestDownloadBrokenJSON(t *testing.T) {
	_, err := NewWithRunner(&fakeRunner{out: []byte("not json")}).Download(context.Background(), "https://example.com/v")
	require.Error(t, err)
}
