package service

import (
	"context"
	"net/http"
	"time"

	"github.com/StounhandJ/luck_xit/internal/downloaders"
	"github.com/StounhandJ/luck_xit/internal/downloaders/ytdlp"
	"github.com/StounhandJ/luck_xit/internal/storage"
)

// Error ошибка, которую можно показать пользователю как есть
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrEmptyURL         = &Error{Status: http.StatusBadRequest, Message: "URL no proporcionada"}
	ErrBadKind          = &Error{Status: http.StatusBadRequest, Message: "Tipo de descarga no soportado"}
	ErrTikTokUnresolved = &Error{Status: http.StatusInternalServerError, Message: "No se pudo obtener información de TikTok"}
	ErrNoImages         = &Error{Status: http.StatusNotFound, Message: "No se encontraron imágenes"}
	ErrNoVideo          = &Error{Status: http.StatusNotFound, Message: "No se encontró URL del video"}
	ErrNoAudio          = &Error{Status: http.StatusNotFound, Message: "No se encontró audio"}
	ErrArtifactMissing  = &Error{Status: http.StatusInternalServerError, Message: "Error al descargar el archivo"}
)

type Extractor interface {
	Fetch(ctx context.Context, url string, opts ytdlp.Options) (string, error)
}

type Fetcher interface {
	ToFile(ctx context.Context, url, path string, timeout time.Duration) error
	Bytes(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
}

type Timeouts struct {
	PreviewVideo time.Duration
	PreviewAudio time.Duration
	Video        time.Duration
	Audio        time.Duration
	Image        time.Duration
}

var DefaultTimeouts = Timeouts{
	PreviewVideo: 60 * time.Second,
	PreviewAudio: 30 * time.Second,
	Video:        120 * time.Second,
	Audio:        60 * time.Second,
	Image:        30 * time.Second,
}

type Deps struct {
	Area   *storage.Area
	TikTok downloaders.IDownloader

	// Inspectors метаданные остальных площадок, первый подходящий и успешный выигрывает
	Inspectors []downloaders.IDownloader
	Extractor  Extractor
	Fetcher    Fetcher
	Timeouts   Timeouts
}

type Service struct {
	area       *storage.Area
	tiktok     downloaders.IDownloader
	inspectors []downloaders.IDownloader
	extractor  Extractor
	fetcher    Fetcher
	timeouts   Timeouts
}

func New(deps Deps) *Service {
	return &Service{
		area:       deps.Area,
		tiktok:     deps.TikTok,
		inspectors: deps.Inspectors,
		extractor:  deps.Extractor,
		fetcher:    deps.Fetcher,
		timeouts:   deps.Timeouts,
	}
}
