package utils

import "github.com/sirupsen/logrus"

const (
	debug   = "debug"
	warning = "warning"
	info    = "info"
	error_  = "error"
	fatal   = "fatal"
)

// Log до InitLogger пишет с уровнем по умолчанию, чтобы пакеты можно было тестировать без main
var Log = logrus.New()

func InitLogger(logLevel string) *logrus.Logger {
	Log = logrus.New()

	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	Log.SetLevel(parseLevel(logLevel))

	return Log
}

func parseLevel(logLevel string) logrus.Level {
	switch logLevel {
	case debug:
		return logrus.DebugLevel
	case warning, "warn":
		return logrus.WarnLevel
	case info:
		return logrus.InfoLevel
	case error_:
		return logrus.ErrorLevel
	case fatal:
		return logrus.FatalLevel
	default:
		return logrus.ErrorLevel
	}
}
