package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/StounhandJ/luck_xit/internal/utils"
	"github.com/google/uuid"
)

const (
	DefaultDirName = "index99"
	mediaDirName   = "media"
	MediaRoute     = "/media/"
)

var ErrNotFound = errors.New("file not found")

// Area две рабочие директории: Root для итоговых файлов и вложенная Media для превью
type Area struct {
	Root  string
	Media string
}

// Token уникальная часть имени файла одного запроса
type Token struct {
	Millis int64
	ID     string
}

func (t Token) String() string {
	return fmt.Sprintf("%d_%s", t.Millis, t.ID)
}

func NewToken() Token {
	return Token{
		Millis: time.Now().UnixMilli(),
		ID:     strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
	}
}

// New создает (если нужно) обе директории. Пустой root - временная директория системы.
func New(root string) (*Area, error) {
	if root == "" {
		root = filepath.Join(os.TempDir(), DefaultDirName)
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}

	a := &Area{
		Root:  root,
		Media: filepath.Join(root, mediaDirName),
	}

	if err := a.ensure(); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Area) ensure() error {
	for _, dir := range []string{a.Root, a.Media} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create dir %s: %w", dir, err)
		}
	}

	return nil
}

// Reset удаляет все содержимое обеих директорий, сами директории остаются.
// Ошибки по отдельным записям только логируются.
func (a *Area) Reset() error {
	entries, err := os.ReadDir(a.Root)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read dir %s: %w", a.Root, err)
		}

		return a.ensure()
	}

	for _, entry := range entries {
		path := filepath.Join(a.Root, entry.Name())
		if path == a.Media && entry.IsDir() {
			clearDir(a.Media)

			continue
		}

		if err := os.RemoveAll(path); err != nil {
			utils.Log.WithError(err).WithField("path", path).Warn("Не удалось удалить временный файл")
		}
	}

	return a.ensure()
}

func clearDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		utils.Log.WithError(err).WithField("dir", dir).Warn("Не удалось прочитать директорию")

		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			utils.Log.WithError(err).WithField("path", path).Warn("Не удалось удалить временный файл")
		}
	}
}

func (a *Area) MediaPath(name string) string {
	return filepath.Join(a.Media, name)
}

func (a *Area) DownloadPath(name string) string {
	return filepath.Join(a.Root, name)
}

// MediaURL ссылка, по которой файл из Media отдает HTTP сервер
func (a *Area) MediaURL(name string) string {
	return MediaRoute + name
}

// FindByPrefix первый файл в dir с заданным префиксом и (если ext не пуст) расширением
func FindByPrefix(dir, prefix, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}

		if ext != "" && !strings.HasSuffix(name, "."+ext) {
			continue
		}

		return filepath.Join(dir, name), nil
	}

	return "", fmt.Errorf("%w: %s*", ErrNotFound, filepath.Join(dir, prefix))
}
