package ytdlp

import "path/filepath"

// Options декларативная конфигурация одного скачивания
type Options struct {
	Format string

	// Dir и Prefix задают шаблон вывода <Dir>/<Prefix>.%(ext)s
	Dir    string
	Prefix string

	// Ext ожидаемое расширение итогового файла (пусто - решает yt-dlp)
	Ext string

	AudioFormat  string
	AudioQuality string
	MergeFormat  string
	RemuxFormat  string
}

func (o Options) OutputTemplate() string {
	return filepath.Join(o.Dir, o.Prefix+".%(ext)s")
}

func (o Options) Args() []string {
	args := []string{
		"--quiet",
		"--no-warnings",
		"--no-playlist",
		"-f", o.Format,
		"-o", o.OutputTemplate(),
	}

	if o.AudioFormat != "" {
		args = append(args, "-x", "--audio-format", o.AudioFormat)

		if o.AudioQuality != "" {
			args = append(args, "--audio-quality", o.AudioQuality)
		}
	}

	if o.MergeFormat != "" {
		args = append(args, "--merge-output-format", o.MergeFormat)
	}

	if o.RemuxFormat != "" {
		args = append(args, "--remux-video", o.RemuxFormat)
	}

	return args
}

// PreviewVideo самый легкий видеопоток для просмотра в браузере
func PreviewVideo(dir, prefix string) Options {
	return Options{
		Format: "worst[ext=mp4]/worst",
		Dir:    dir,
		Prefix: prefix,
	}
}

func PreviewAudio(dir, prefix string) Options {
	return Options{
		Format:       "bestaudio/best",
		Dir:          dir,
		Prefix:       prefix,
		Ext:          "mp3",
		AudioFormat:  "mp3",
		AudioQuality: "64K",
	}
}

func FinalAudio(dir, prefix string) Options {
	return Options{
		Format:       "bestaudio/best",
		Dir:          dir,
		Prefix:       prefix,
		Ext:          "mp3",
		AudioFormat:  "mp3",
		AudioQuality: "192K",
	}
}

func FinalVideo(dir, prefix string) Options {
	return Options{
		Format:      "best[ext=mp4]/best",
		Dir:         dir,
		Prefix:      prefix,
		Ext:         "mp4",
		MergeFormat: "mp4",
		RemuxFormat: "mp4",
	}
}
