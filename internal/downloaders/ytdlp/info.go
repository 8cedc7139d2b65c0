package ytdlp

import (
	"github.com/StounhandJ/luck_xit/internal/utils"
	"github.com/mailru/easyjson/jlexer"
)

// Info поля из yt-dlp -J, которые используются в превью
type Info struct {
	Title        string      `json:"title"`
	Thumbnail    string      `json:"thumbnail"`
	Thumbnails   []Thumbnail `json:"thumbnails"`
	Duration     *float64    `json:"duration"`
	Uploader     string      `json:"uploader"`
	ViewCount    *int64      `json:"view_count"`
	LikeCount    *int64      `json:"like_count"`
	CommentCount *int64      `json:"comment_count"`
}

type Thumbnail struct {
	URL string `json:"url"`
}

func (v *Info) UnmarshalEasyJSON(in *jlexer.Lexer) {
	utils.DecodeObject(in, func(key string) {
		switch key {
		case "title":
			v.Title = in.String()
		case "thumbnail":
			v.Thumbnail = in.String()
		case "thumbnails":
			utils.DecodeArray(in, func() {
				var th Thumbnail
				th.UnmarshalEasyJSON(in)
				v.Thumbnails = append(v.Thumbnails, th)
			})
		case "duration":
			d := in.Float64()
			v.Duration = &d
		case "uploader":
			v.Uploader = in.String()
		case "view_count":
			n := in.Int64()
			v.ViewCount = &n
		case "like_count":
			n := in.Int64()
			v.LikeCount = &n
		case "comment_count":
			n := in.Int64()
			v.CommentCount = &n
		default:
			in.SkipRecursive()
		}
	})
}

func (v *Thumbnail) UnmarshalEasyJSON(in *jlexer.Lexer) {
	utils.DecodeObject(in, func(key string) {
		if key == "url" {
			v.URL = in.String()

			return
		}

		in.SkipRecursive()
	})
}
