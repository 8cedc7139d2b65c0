package main

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/StounhandJ/luck_xit/internal/config"
	"github.com/StounhandJ/luck_xit/internal/downloaders"
	tiktok "github.com/StounhandJ/luck_xit/internal/downloaders/tik_tok"
	"github.com/StounhandJ/luck_xit/internal/downloaders/youtube"
	"github.com/StounhandJ/luck_xit/internal/downloaders/ytdlp"
	"github.com/StounhandJ/luck_xit/internal/fetcher"
	"github.com/StounhandJ/luck_xit/internal/handlers"
	"github.com/StounhandJ/luck_xit/internal/service"
	"github.com/StounhandJ/luck_xit/internal/storage"
	"github.com/StounhandJ/luck_xit/internal/utils"
	"github.com/valyala/fasthttp"
)

var cfg config.Config

func main() {
	//------ Получение Конфигурации ------//
	if err := config.LoadConfig(&cfg); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	utils.InitLogger(cfg.Application.LogLevel)
	//---------------//

	//------ HTTP клиент для отправки запросов ------//
	client := http.Client{}

	if cfg.Application.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.Application.ProxyURL)
		if err != nil {
			utils.Log.Panic(err)
		}

		client.Transport = &http.Transport{
			Proxy: http.ProxyURL(proxyURL), // прокси
		}
	}
	//---------------//

	//------ Временные файлы ------//
	area, err := storage.New(cfg.Storage.Dir)
	if err != nil {
		utils.Log.Error(err)
		os.Exit(1)
	}

	if err := area.Reset(); err != nil {
		utils.Log.Error(err)
		os.Exit(1)
	}

	utils.Log.WithField("root", area.Root).Info("Хранилище очищено")
	//---------------//

	//------ Сервисы ------//
	extractor := ytdlp.New(cfg.YtDlp.Binary)

	svc := service.New(service.Deps{
		Area:   area,
		TikTok: tiktok.New(&client, cfg.TikTok.APIURL, cfg.TikTok.Timeout.Std()),
		Inspectors: []downloaders.IDownloader{
			youtube.New(&client),
			extractor,
		},
		Extractor: extractor,
		Fetcher:   fetcher.New(&client),
		Timeouts: service.Timeouts{
			PreviewVideo: cfg.TikTok.PreviewVideoTimeout.Std(),
			PreviewAudio: cfg.TikTok.PreviewAudioTimeout.Std(),
			Video:        cfg.TikTok.VideoTimeout.Std(),
			Audio:        cfg.TikTok.AudioTimeout.Std(),
			Image:        cfg.TikTok.ImageTimeout.Std(),
		},
	})
	//---------------//

	//------ HTTP сервер ------//
	server := &fasthttp.Server{
		Handler:      handlers.NewHandler(svc, area.Media).Router(),
		Name:         cfg.Server.Name,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
		Logger:       utils.Log,
	}

	go func() {
		utils.Log.WithField("addr", cfg.Server.Addr).Info("Запуск HTTP сервера")

		if err := server.ListenAndServe(cfg.Server.Addr); err != nil {
			utils.Log.Fatal(err)
		}
	}()
	//---------------//

	//------ Ожидание заершения программы ------//
	utils.Log.Info("Всё запущено")

	cSignal := make(chan os.Signal, 2)
	signal.Notify(cSignal, os.Interrupt, syscall.SIGTERM)
	<-cSignal

	utils.Log.Info("Остановка HTTP сервера")

	if err := server.Shutdown(); err != nil {
		utils.Log.Error(err)
	}
}
