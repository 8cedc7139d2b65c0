package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/StounhandJ/luck_xit/internal/downloaders"
	"github.com/StounhandJ/luck_xit/internal/storage"
	"github.com/StounhandJ/luck_xit/internal/utils"
	easyjson "github.com/mailru/easyjson"
)

const (
	defaultTitle  = "Sin título"
	unknownAuthor = "Desconocido"
)

// Client обертка над yt-dlp: извлечение метаданных и скачивание по Options
type Client struct {
	runner Runner
}

func New(binary string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}

	return NewWithRunner(execRunner{binary: binary})
}

func NewWithRunner(runner Runner) *Client {
	return &Client{runner: runner}
}

// Download только метаданные, без скачивания файлов
func (c *Client) Download(ctx context.Context, url string) (*downloaders.Media, error) {
	out, err := c.runner.Run(ctx, "-J", "--skip-download", "--no-warnings", "--no-playlist", "--", url)
	if err != nil {
		return nil, err
	}

	var info Info
	if err := easyjson.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("decode yt-dlp info: %w", err)
	}

	thumbnail := info.Thumbnail
	for i := len(info.Thumbnails) - 1; i >= 0; i-- {
		if info.Thumbnails[i].URL != "" {
			thumbnail = info.Thumbnails[i].URL

			break
		}
	}

	return &downloaders.Media{
		Kind:         downloaders.KindVideo,
		Platform:     downloaders.PlatformOther,
		Title:        utils.StringNotEmptyCoalesce(info.Title, defaultTitle),
		ThumbnailURL: thumbnail,
		Author:       utils.StringNotEmptyCoalesce(info.Uploader, unknownAuthor),
		Duration:     info.Duration,
		ViewCount:    info.ViewCount,
		LikeCount:    info.LikeCount,
		CommentCount: info.CommentCount,
	}, nil
}

// Valid yt-dlp пробует любую ссылку
func (c *Client) Valid(url string) bool {
	return strings.TrimSpace(url) != ""
}

// Fetch скачивает файл и возвращает путь к нему. Путь берется из --print after_move:filepath,
// если yt-dlp его не напечатал - поиск по префиксу в opts.Dir.
func (c *Client) Fetch(ctx context.Context, url string, opts Options) (string, error) {
	args := append(opts.Args(), "--no-simulate", "--print", "after_move:filepath", "--", url)

	out, err := c.runner.Run(ctx, args...)
	if err != nil {
		return "", err
	}

	if path := printedPath(out, opts); path != "" {
		return path, nil
	}

	return storage.FindByPrefix(opts.Dir, opts.Prefix, opts.Ext)
}

func printedPath(out []byte, opts Options) string {
	dir := filepath.Clean(opts.Dir)
	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))

	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(string(lines[i]))
		if line == "" || filepath.Dir(line) != dir {
			continue
		}

		if opts.Ext != "" && filepath.Ext(line) != "."+opts.Ext {
			continue
		}

		if st, err := os.Stat(line); err == nil && !st.IsDir() {
			return line
		}
	}

	return ""
}
