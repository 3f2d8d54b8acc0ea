package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log = logrus.New()

// Init настраивает глобальный логгер из окружения.
// Вызывается один раз при старте (main.go) и в TestMain.
func Init() {
	Log = logrus.New()

	// Уровень: LOG_LEVEL, по умолчанию info.
	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// "json" для сбора логов, "text" для разработки.
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Redirect перенаправляет вывод логгера.
// Терминальный просмотрщик пишет логи в файл, чтобы не ломать экран.
func Redirect(w io.Writer) {
	Log.SetOutput(w)
	Log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
}

// For возвращает запись с полем component.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
