package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/StounhandJ/luck_xit/internal/downloaders"
	"github.com/StounhandJ/luck_xit/internal/downloaders/ytdlp"
	"github.com/StounhandJ/luck_xit/internal/storage"
	"github.com/StounhandJ/luck_xit/internal/utils"
)

var errNoInspector = errors.New("no inspector for url")

// Preview описание ролика для подтверждения перед скачиванием.
// VideoURL и AudioURL - локальные ссылки на превью или nil.
type Preview struct {
	Type     downloaders.Kind
	Platform string

	Title     string
	Thumbnail string
	VideoURL  *string
	AudioURL  *string
	Images    []string

	Author   string
	Music    string
	MusicURL string
	Duration *float64

	ViewCount *int64
	Likes     *int64
	Comments  *int64
	Shares    *int64
}

func (s *Service) Preview(ctx context.Context, rawURL string) (*Preview, error) {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return nil, ErrEmptyURL
	}

	token := storage.NewToken()

	if s.tiktok.Valid(url) {
		return s.previewTikTok(ctx, url, token)
	}

	return s.previewOther(ctx, url, token)
}

func (s *Service) previewTikTok(ctx context.Context, url string, token storage.Token) (*Preview, error) {
	media, err := s.tiktok.Download(ctx, url)
	if err != nil {
		utils.Log.WithError(err).WithField("url", url).Error("Ошибка TIKWM API")

		return nil, ErrTikTokUnresolved
	}

	preview := newPreview(media)

	if media.Kind == downloaders.KindGallery {
		preview.MusicURL = media.AudioURL

		return preview, nil
	}

	if media.VideoURL != "" {
		preview.VideoURL = s.fetchPreview(ctx, media.VideoURL, "preview_tiktok_"+token.String()+".mp4", s.timeouts.PreviewVideo)
	}

	if media.AudioURL != "" {
		preview.AudioURL = s.fetchPreview(ctx, media.AudioURL, "preview_tiktok_audio_"+token.String()+".mp3", s.timeouts.PreviewAudio)
	}

	return preview, nil
}

// fetchPreview best-effort: ошибка только логируется
func (s *Service) fetchPreview(ctx context.Context, url, name string, timeout time.Duration) *string {
	if err := s.fetcher.ToFile(ctx, url, s.area.MediaPath(name), timeout); err != nil {
		utils.Log.WithError(err).WithField("name", name).Warn("Не удалось скачать превью TikTok")

		return nil
	}

	link := s.area.MediaURL(name)

	return &link
}

func (s *Service) previewOther(ctx context.Context, url string, token storage.Token) (*Preview, error) {
	media, err := s.inspect(ctx, url)
	if err != nil {
		return nil, err
	}

	preview := newPreview(media)
	preview.VideoURL = s.extractPreview(ctx, url, ytdlp.PreviewVideo(s.area.Media, "preview_video_"+token.String()))
	preview.AudioURL = s.extractPreview(ctx, url, ytdlp.PreviewAudio(s.area.Media, "preview_audio_"+token.String()))

	return preview, nil
}

func (s *Service) inspect(ctx context.Context, url string) (*downloaders.Media, error) {
	lastErr := errNoInspector

	for _, inspector := range s.inspectors {
		if !inspector.Valid(url) {
			continue
		}

		media, err := inspector.Download(ctx, url)
		if err == nil {
			return media, nil
		}

		utils.Log.WithError(err).WithField("url", url).Debug("Не удалось получить метаданные, пробуем следующий источник")
		lastErr = err
	}

	return nil, lastErr
}

func (s *Service) extractPreview(ctx context.Context, url string, opts ytdlp.Options) *string {
	path, err := s.extractor.Fetch(ctx, url, opts)
	if err != nil {
		utils.Log.WithError(err).WithField("prefix", opts.Prefix).Warn("Не удалось скачать превью")

		return nil
	}

	link := s.area.MediaURL(filepath.Base(path))

	return &link
}

func newPreview(media *downloaders.Media) *Preview {
	return &Preview{
		Type:      media.Kind,
		Platform:  media.Platform,
		Title:     media.Title,
		Thumbnail: media.ThumbnailURL,
		Images:    media.Images,
		Author:    media.Author,
		Music:     media.MusicTitle,
		Duration:  media.Duration,
		ViewCount: media.ViewCount,
		Likes:     media.LikeCount,
		Comments:  media.CommentCount,
		Shares:    media.ShareCount,
	}
}
