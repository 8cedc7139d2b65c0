package tiktok

import (
	"github.com/StounhandJ/luck_xit/internal/utils"
	"github.com/mailru/easyjson/jlexer"
)

// Ручные декодеры easyjson: из ответа tikwm нужна только малая часть полей,
// остальное пропускается через SkipRecursive.

func (v *ApiResponse) UnmarshalEasyJSON(in *jlexer.Lexer) {
	utils.DecodeObject(in, func(key string) {
		switch key {
		case "code":
			v.Code = in.Int()
		case "msg":
			v.Msg = in.String()
		case "processed_time":
			v.ProcessedTime = in.Float64()
		case "data":
			(&v.Data).UnmarshalEasyJSON(in)
		default:
			in.SkipRecursive()
		}
	})
}

func (v *ApiResponse) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	v.UnmarshalEasyJSON(&r)

	return r.Error()
}

func (v *ApiData) UnmarshalEasyJSON(in *jlexer.Lexer) {
	utils.DecodeObject(in, func(key string) {
		switch key {
		case "id":
			v.ID = in.String()
		case "title":
			v.Title = in.String()
		case "cover":
			v.Cover = in.String()
		case "origin_cover":
			v.OriginCover = in.String()
		case "duration":
			v.Duration = in.Float64()
		case "play":
			v.Play = in.String()
		case "hdplay":
			v.Hdplay = in.String()
		case "wmplay":
			v.Wmplay = in.String()
		case "music":
			v.Music = in.String()
		case "music_info":
			(&v.MusicInfo).UnmarshalEasyJSON(in)
		case "play_count":
			v.PlayCount = in.Int64()
		case "digg_count":
			v.DiggCount = in.Int64()
		case "comment_count":
			v.CommentCount = in.Int64()
		case "share_count":
			v.ShareCount = in.Int64()
		case "author":
			(&v.Author).UnmarshalEasyJSON(in)
		case "images":
			v.Images = v.Images[:0]
			utils.DecodeArray(in, func() {
				v.Images = append(v.Images, in.String())
			})
		default:
			in.SkipRecursive()
		}
	})
}

func (v *ApiMusicInfo) UnmarshalEasyJSON(in *jlexer.Lexer) {
	utils.DecodeObject(in, func(key string) {
		switch key {
		case "id":
			v.ID = in.String()
		case "title":
			v.Title = in.String()
		case "play":
			v.Play = in.String()
		case "author":
			v.Author = in.String()
		case "original":
			v.Original = in.Bool()
		default:
			in.SkipRecursive()
		}
	})
}

func (v *ApiAuthor) UnmarshalEasyJSON(in *jlexer.Lexer) {
	utils.DecodeObject(in, func(key string) {
		switch key {
		case "id":
			v.ID = in.String()
		case "unique_id":
			v.UniqueID = in.String()
		case "nickname":
			v.Nickname = in.String()
		default:
			in.SkipRecursive()
		}
	})
}
