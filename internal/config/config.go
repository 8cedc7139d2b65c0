package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
)

var (
	configPath      = "config/config.yaml"
	devConfigPath   = "config/config.dev.yaml"
	localConfigPath = "config/config.local.yaml"
)

const appName = "luck_xit"

// nolint
type duration time.Duration

// Std возвращает значение как time.Duration
func (d duration) Std() time.Duration {
	return time.Duration(d)
}

// LoadConfig читает yaml по ENV (local, dev, prod) или по CONFIG_PATH, затем накладывает env и флаги
func LoadConfig(c any) error {
	return parseConfig(c, configFile(), CommonParseOptions)
}

func configFile() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}

	switch os.Getenv("ENV") {
	case "local":
		return localConfigPath
	case "dev":
		return devConfigPath
	default:
		return configPath
	}
}

func parseConfig(c any, path string, opts parseOptions) error {
	if err := readFile(c, path); err != nil {
		return err
	}

	return CommonHelp(appName, "Запустить сервер LUCK XIT", "Превью и скачивание видео, аудио и галерей по ссылке", c, opts)
}

func readFile(cfg any, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Fatal(cerr)
		}
	}()

	decoder := yaml.NewDecoder(f)

	if err = decoder.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode yaml file %s: %w", path, err)
	}

	return nil
}

// UnmarshalYAML принимает строку для time.ParseDuration ("5m", "1h30m") или число секунд (int, float).
// nolint
func (d *duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		if dur, err := time.ParseDuration(s); err == nil {
			*d = duration(dur)

			return nil
		}

		// декодер мог отдать число строкой
		sec, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}

		*d = seconds(sec)

		return nil
	}

	var f float64
	if err := unmarshal(&f); err == nil {
		*d = seconds(f)

		return nil
	}

	return fmt.Errorf("unsupported duration format")
}

func seconds(f float64) duration {
	return duration(time.Duration(f * float64(time.Second)))
}

// nolint
func (d duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}
