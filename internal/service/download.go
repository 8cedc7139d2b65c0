package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/StounhandJ/luck_xit/internal/downloaders"
	"github.com/StounhandJ/luck_xit/internal/downloaders/ytdlp"
	"github.com/StounhandJ/luck_xit/internal/storage"
	"github.com/StounhandJ/luck_xit/internal/utils"
)

type Kind string

const (
	KindVideo   Kind = "video"
	KindAudio   Kind = "audio"
	KindGallery Kind = "gallery"
)

const (
	mimeMP4 = "video/mp4"
	mimeMP3 = "audio/mpeg"
	mimeZip = "application/zip"
)

// Artifact итоговый файл на диске и имя, под которым его получит пользователь
type Artifact struct {
	Path        string
	Name        string
	ContentType string
}

func ParseKind(raw string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case "", KindVideo:
		return KindVideo, nil
	case KindAudio:
		return KindAudio, nil
	case KindGallery:
		return KindGallery, nil
	default:
		return "", ErrBadKind
	}
}

func (s *Service) Download(ctx context.Context, rawURL, rawKind string) (*Artifact, error) {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return nil, ErrEmptyURL
	}

	kind, err := ParseKind(rawKind)
	if err != nil {
		return nil, err
	}

	token := storage.NewToken()

	if s.tiktok.Valid(url) {
		media, err := s.tiktok.Download(ctx, url)
		if err != nil {
			utils.Log.WithError(err).WithField("url", url).Error("Ошибка TIKWM API")

			return nil, ErrTikTokUnresolved
		}

		return s.downloadTikTok(ctx, media, kind, token)
	}

	return s.downloadOther(ctx, url, kind, token)
}

func (s *Service) downloadTikTok(ctx context.Context, media *downloaders.Media, kind Kind, token storage.Token) (*Artifact, error) {
	switch kind {
	case KindGallery:
		if len(media.Images) == 0 {
			return nil, ErrNoImages
		}

		path := s.area.DownloadPath(fmt.Sprintf("luck_xit_tiktok_gallery_%s.zip", token))
		if err := s.buildGallery(ctx, media.Images, path); err != nil {
			return nil, fmt.Errorf("build gallery: %w", err)
		}

		return &Artifact{
			Path:        path,
			Name:        fmt.Sprintf("luck_xit_tiktok_gallery_%d.zip", token.Millis),
			ContentType: mimeZip,
		}, nil

	case KindAudio:
		if media.AudioURL == "" {
			return nil, ErrNoAudio
		}

		path := s.area.DownloadPath(fmt.Sprintf("luck_xit_tiktok_audio_%s.mp3", token))
		if err := s.fetcher.ToFile(ctx, media.AudioURL, path, s.timeouts.Audio); err != nil {
			return nil, fmt.Errorf("fetch audio: %w", err)
		}

		return &Artifact{
			Path:        path,
			Name:        fmt.Sprintf("luck_xit_tiktok_audio_%d.mp3", token.Millis),
			ContentType: mimeMP3,
		}, nil

	default:
		if media.VideoURL == "" {
			return nil, ErrNoVideo
		}

		path := s.area.DownloadPath(fmt.Sprintf("luck_xit_tiktok_%s.mp4", token))
		if err := s.fetcher.ToFile(ctx, media.VideoURL, path, s.timeouts.Video); err != nil {
			return nil, fmt.Errorf("fetch video: %w", err)
		}

		return &Artifact{
			Path:        path,
			Name:        fmt.Sprintf("luck_xit_tiktok_%d.mp4", token.Millis),
			ContentType: mimeMP4,
		}, nil
	}
}

// downloadOther галереи вне TikTok нет, gallery скачивается как видео
func (s *Service) downloadOther(ctx context.Context, url string, kind Kind, token storage.Token) (*Artifact, error) {
	prefix := "luck_xit_" + token.String()

	opts := ytdlp.FinalVideo(s.area.Root, prefix)
	contentType := mimeMP4

	if kind == KindAudio {
		opts = ytdlp.FinalAudio(s.area.Root, prefix)
		contentType = mimeMP3
	} else {
		kind = KindVideo
	}

	path, err := s.extractor.Fetch(ctx, url, opts)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrArtifactMissing
		}

		return nil, err
	}

	return &Artifact{
		Path:        path,
		Name:        fmt.Sprintf("luck_xit_%s_%d.%s", kind, token.Millis, opts.Ext),
		ContentType: contentType,
	}, nil
}
