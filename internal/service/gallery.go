package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/StounhandJ/luck_xit/internal/utils"
	"github.com/klauspost/compress/zip"
)

// buildGallery собирает zip из картинок, картинки с ошибкой пропускаются
func (s *Service) buildGallery(ctx context.Context, images []string, path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive %s: %w", path, err)
	}

	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}

		if err != nil {
			_ = os.Remove(path)
		}
	}()

	zw := zip.NewWriter(file)

	for idx, imgURL := range images {
		data, err := s.fetcher.Bytes(ctx, imgURL, s.timeouts.Image)
		if err != nil {
			utils.Log.WithError(err).WithField("index", idx+1).Warn("Ошибка скачивания картинки")

			continue
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     fmt.Sprintf("imagen_%03d.jpg", idx+1),
			Method:   zip.Deflate,
			Modified: time.Now(),
		})
		if err != nil {
			return err
		}

		if _, err := w.Write(data); err != nil {
			return err
		}
	}

	return zw.Close()
}
