package downloaders

import "context"

type Kind string

const (
	KindVideo   Kind = "video"
	KindGallery Kind = "gallery"
)

const (
	PlatformTikTok = "tiktok"
	PlatformOther  = "other"
)

// IDownloader получает метаданные ролика по ссылке. Сами файлы не скачиваются.
type IDownloader interface {
	Download(ctx context.Context, url string) (*Media, error)
	Valid(url string) bool
}

// Media нормализованный результат извлечения, живет только в рамках запроса.
// Счетчики nil, если источник их не отдал.
type Media struct {
	Kind     Kind
	Platform string

	Title        string
	ThumbnailURL string
	VideoURL     string
	AudioURL     string
	Images       []string

	Author     string
	MusicTitle string
	Duration   *float64

	ViewCount    *int64
	LikeCount    *int64
	CommentCount *int64
	ShareCount   *int64
}

func Int64(v int64) *int64 {
	return &v
}

func Float64(v float64) *float64 {
	return &v
}
