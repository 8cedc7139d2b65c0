package handlers

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/StounhandJ/luck_xit/internal/service"
	"github.com/StounhandJ/luck_xit/internal/utils"
	easyjson "github.com/mailru/easyjson"
	"github.com/valyala/fasthttp"
)

//go:embed templates/index.html
var indexHTML []byte

// Стартовая страница
func (h handler) Index(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetBody(indexHTML)
}

func (h handler) Health(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, healthResponse{Status: "ok", Message: healthMessage})
}

func (h handler) Preview(ctx *fasthttp.RequestCtx) {
	url := string(ctx.FormValue("url"))

	preview, err := h.svc.Preview(ctx, url)
	if err != nil {
		writeError(ctx, err, "Error: ")

		return
	}

	writeJSON(ctx, fasthttp.StatusOK, previewResponse{Preview: preview})
}

func (h handler) Download(ctx *fasthttp.RequestCtx) {
	url := string(ctx.FormValue("url"))
	kind := string(ctx.FormValue("kind"))

	artifact, err := h.svc.Download(ctx, url, kind)
	if err != nil {
		writeError(ctx, err, "Error en la descarga: ")

		return
	}

	file, err := os.Open(artifact.Path)
	if err != nil {
		writeError(ctx, err, "Error en la descarga: ")

		return
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		writeError(ctx, err, "Error en la descarga: ")

		return
	}

	ctx.SetContentType(artifact.ContentType)
	ctx.Response.Header.Set(fasthttp.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, utils.SanitizeFileName(artifact.Name)))

	// fasthttp закроет файл после отправки
	ctx.SetBodyStream(file, int(stat.Size()))
}

// writeError ошибки сервиса отдаются с их статусом и текстом, прочие - 500 с префиксом
func writeError(ctx *fasthttp.RequestCtx, err error, prefix string) {
	var serr *service.Error
	if errors.As(err, &serr) {
		writeJSON(ctx, serr.Status, errorResponse{Error: serr.Message})

		return
	}

	utils.Log.WithError(err).WithField("path", string(ctx.Path())).Error("Ошибка обработки запроса")

	writeJSON(ctx, fasthttp.StatusInternalServerError, errorResponse{Error: prefix + err.Error()})
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v easyjson.Marshaler) {
	body, err := easyjson.Marshal(v)
	if err != nil {
		utils.Log.Error(err)
		ctx.Error(`{"error":"Error: internal"}`, fasthttp.StatusInternalServerError)

		return
	}

	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}
