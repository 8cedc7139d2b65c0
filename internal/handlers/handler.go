package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/StounhandJ/luck_xit/internal/service"
	"github.com/StounhandJ/luck_xit/internal/utils"
	"github.com/fasthttp/router"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

type Service interface {
	Preview(ctx context.Context, url string) (*service.Preview, error)
	Download(ctx context.Context, url, kind string) (*service.Artifact, error)
}

type handler struct {
	svc      Service
	mediaDir string
}

func NewHandler(svc Service, mediaDir string) handler {
	return handler{
		svc:      svc,
		mediaDir: mediaDir,
	}
}

func (h handler) SetupRoutes(r *router.Router) {
	r.GET("/", h.Index)
	r.GET("/health", h.Health)

	r.POST("/preview", h.Preview)
	r.POST("/download", h.Download)

	// Только превью, итоговые файлы отдаются через /download
	r.ServeFilesCustom("/media/{filepath:*}", &fasthttp.FS{
		Root:               h.mediaDir,
		GenerateIndexPages: false,
		AcceptByteRange:    true,
		Compress:           false,
	})

	r.PanicHandler = h.Panic
}

// Router готовый обработчик со всеми маршрутами и логированием запросов
func (h handler) Router() fasthttp.RequestHandler {
	r := router.New()
	h.SetupRoutes(r)

	return withLogging(r.Handler)
}

func (handler) Panic(ctx *fasthttp.RequestCtx, rcv any) {
	utils.Log.WithField("path", string(ctx.Path())).Errorf("panic: %v", rcv)

	ctx.ResetBody()
	writeJSON(ctx, fasthttp.StatusInternalServerError, errorResponse{Error: fmt.Sprintf("Error: %v", rcv)})
}

func withLogging(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()

		next(ctx)

		utils.Log.WithFields(logrus.Fields{
			"method":   string(ctx.Method()),
			"path":     string(ctx.Path()),
			"status":   ctx.Response.StatusCode(),
			"duration": time.Since(start).String(),
		}).Debug("request")
	}
}
