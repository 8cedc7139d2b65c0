package handlers

import (
	"github.com/StounhandJ/luck_xit/internal/downloaders"
	"github.com/StounhandJ/luck_xit/internal/service"
	"github.com/mailru/easyjson/jwriter"
)

const healthMessage = "LUCK XIT Server Running"

type errorResponse struct {
	Error string `json:"error"`
}

func (v errorResponse) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"error":`)
	w.String(v.Error)
	w.RawByte('}')
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (v healthResponse) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"status":`)
	w.String(v.Status)
	w.RawString(`,"message":`)
	w.String(v.Message)
	w.RawByte('}')
}

// previewResponse набор полей зависит от типа: галерея TikTok, видео TikTok или другая площадка
type previewResponse struct {
	*service.Preview
}

func (v previewResponse) MarshalEasyJSON(w *jwriter.Writer) {
	p := v.Preview

	w.RawString(`{"success":true,"type":`)
	w.String(string(p.Type))
	w.RawString(`,"platform":`)
	w.String(p.Platform)
	w.RawString(`,"title":`)
	w.String(p.Title)
	w.RawString(`,"thumbnail":`)
	writeOptString(w, p.Thumbnail)

	if p.Type == downloaders.KindGallery {
		w.RawString(`,"images":`)
		writeStrings(w, p.Images)
		w.RawString(`,"image_count":`)
		w.Int(len(p.Images))
		w.RawString(`,"author":`)
		w.String(p.Author)
		writeCounters(w, p)
		w.RawString(`,"music":`)
		w.String(p.Music)
		w.RawString(`,"music_url":`)
		w.String(p.MusicURL)
		w.RawByte('}')

		return
	}

	w.RawString(`,"video_url":`)
	writeStringPtr(w, p.VideoURL)
	w.RawString(`,"audio_url":`)
	writeStringPtr(w, p.AudioURL)
	w.RawString(`,"duration":`)
	writeFloatPtr(w, p.Duration)
	w.RawString(`,"uploader":`)
	w.String(p.Author)
	w.RawString(`,"view_count":`)
	writeIntPtr(w, p.ViewCount)

	if p.Platform == downloaders.PlatformTikTok {
		writeCounters(w, p)
	}

	w.RawByte('}')
}

func writeCounters(w *jwriter.Writer, p *service.Preview) {
	w.RawString(`,"likes":`)
	writeIntPtr(w, p.Likes)
	w.RawString(`,"comments":`)
	writeIntPtr(w, p.Comments)
	w.RawString(`,"shares":`)
	writeIntPtr(w, p.Shares)
}

func writeStrings(w *jwriter.Writer, values []string) {
	w.RawByte('[')

	for i, s := range values {
		if i > 0 {
			w.RawByte(',')
		}

		w.String(s)
	}

	w.RawByte(']')
}

// writeOptString пустая строка пишется как null
func writeOptString(w *jwriter.Writer, s string) {
	if s == "" {
		w.RawString("null")

		return
	}

	w.String(s)
}

func writeStringPtr(w *jwriter.Writer, s *string) {
	if s == nil {
		w.RawString("null")

		return
	}

	w.String(*s)
}

func writeIntPtr(w *jwriter.Writer, n *int64) {
	if n == nil {
		w.RawString("null")

		return
	}

	w.Int64(*n)
}

func writeFloatPtr(w *jwriter.Writer, f *float64) {
	if f == nil {
		w.RawString("null")

		return
	}

	w.Float64(*f)
}
