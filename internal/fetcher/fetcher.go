package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/StounhandJ/luck_xit/internal/utils"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36"

var ErrStatus = errors.New("unexpected status code")

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher скачивает файлы по прямым ссылкам (CDN TikTok, картинки галереи)
type Fetcher struct {
	client Doer
}

func New(client Doer) *Fetcher {
	return &Fetcher{client: client}
}

func (f *Fetcher) open(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		closeBody(resp)

		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	return resp, nil
}

// ToFile пишет тело ответа в path. Недокачанный файл удаляется.
func (f *Fetcher) ToFile(ctx context.Context, url, path string, timeout time.Duration) (err error) {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	resp, err := f.open(ctx, url)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}

	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}

		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if _, err = io.Copy(file, resp.Body); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}

func (f *Fetcher) Bytes(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	resp, err := f.open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	return io.ReadAll(resp.Body)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		utils.Log.Error(err)
	}
}
