package config

type Config struct {
	Application Application `yaml:"Application" env:"APP" flag:""`
	Server      Server      `yaml:"Server"`
	Storage     Storage     `yaml:"Storage"`
	TikTok      TikTok      `yaml:"TikTok" env:"TIKTOK" flag:"tiktok"`
	YtDlp       YtDlp       `yaml:"YtDlp" env:"YTDLP" flag:"ytdlp"`
}

type Application struct {
	LogLevel string `yaml:"LogLevel" env:"LOGLEVEL" usage:"debug, info, warning, error, fatal"`
	ProxyURL string `yaml:"ProxyURL" env:"PROXY_URL" flag:"proxy-url" usage:"Прокси для отправки запросов" cli:"optional"`
}

type Server struct {
	Addr         string   `yaml:"Addr" usage:"Адрес HTTP сервера, например :5000"`
	Name         string   `yaml:"Name" usage:"Заголовок Server в ответах" cli:"optional"`
	ReadTimeout  duration `yaml:"ReadTimeout"`
	WriteTimeout duration `yaml:"WriteTimeout" usage:"Должен покрывать самую долгую загрузку"`
}

type Storage struct {
	Dir string `yaml:"Dir" usage:"Корень временных файлов, по умолчанию $TMPDIR/index99" cli:"optional"`
}

type TikTok struct {
	APIURL  string   `yaml:"APIURL" env:"API_URL" flag:"api-url" usage:"Endpoint tikwm" cli:"optional"`
	Timeout duration `yaml:"Timeout" usage:"Таймаут запроса к tikwm"`

	PreviewVideoTimeout duration `yaml:"PreviewVideoTimeout"`
	PreviewAudioTimeout duration `yaml:"PreviewAudioTimeout"`
	VideoTimeout        duration `yaml:"VideoTimeout"`
	AudioTimeout        duration `yaml:"AudioTimeout"`
	ImageTimeout        duration `yaml:"ImageTimeout"`
}

type YtDlp struct {
	Binary string `yaml:"Binary" usage:"Путь до yt-dlp" cli:"optional"`
}
