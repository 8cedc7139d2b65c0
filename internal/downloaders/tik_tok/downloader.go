package tiktok

import (
	"context"
	"time"

	"github.com/StounhandJ/luck_xit/internal/downloaders"
	"github.com/StounhandJ/luck_xit/internal/utils"
)

const (
	defaultVideoTitle   = "Video de TikTok"
	defaultGalleryTitle = "Galería de TikTok"
	unknownAuthor       = "Desconocido"
)

var domains = []string{"tiktok.com", "vm.tiktok.com"}

type downloader struct {
	client  Doer
	apiURL  string
	timeout time.Duration
}

func New(client Doer, apiURL string, timeout time.Duration) downloaders.IDownloader {
	if apiURL == "" {
		apiURL = BaseUrl
	}

	return &downloader{
		client:  client,
		apiURL:  apiURL,
		timeout: timeout,
	}
}

func (d downloader) Download(ctx context.Context, url string) (*downloaders.Media, error) {
	metadata, err := fetchMetadata(ctx, d.client, d.apiURL, url, d.timeout)
	if err != nil {
		return nil, err
	}

	return d.toMedia(metadata.Data), nil
}

func (d downloader) toMedia(data ApiData) *downloaders.Media {
	media := &downloaders.Media{
		Platform:     downloaders.PlatformTikTok,
		Author:       utils.StringNotEmptyCoalesce(data.Author.UniqueID, unknownAuthor),
		MusicTitle:   data.MusicInfo.Title,
		AudioURL:     d.resolve(utils.StringNotEmptyCoalesce(data.MusicInfo.Play, data.Music)),
		VideoURL:     d.resolve(utils.StringNotEmptyCoalesce(data.Hdplay, data.Play)),
		LikeCount:    downloaders.Int64(data.DiggCount),
		CommentCount: downloaders.Int64(data.CommentCount),
		ShareCount:   downloaders.Int64(data.ShareCount),
	}

	// Слайдшоу: картинки остаются ссылками до запроса на скачивание
	if len(data.Images) > 0 {
		media.Kind = downloaders.KindGallery
		media.Title = utils.StringNotEmptyCoalesce(data.Title, defaultGalleryTitle)
		media.Images = data.Images
		media.ThumbnailURL = data.Images[0]

		return media
	}

	media.Kind = downloaders.KindVideo
	media.Title = utils.StringNotEmptyCoalesce(data.Title, defaultVideoTitle)
	media.ThumbnailURL = d.resolve(data.Cover)
	media.Duration = downloaders.Float64(data.Duration)
	media.ViewCount = downloaders.Int64(data.PlayCount)

	return media
}

// resolve tikwm иногда отдает пути относительно своего домена
func (d downloader) resolve(ref string) string {
	return utils.ResolveReference(d.apiURL, ref)
}

// Valid относится ли ссылка к TikTok
func Valid(url string) bool {
	return utils.ContainsFold(url, domains...)
}

func (downloader) Valid(url string) bool {
	return Valid(url)
}
