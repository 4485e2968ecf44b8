// pkg/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log — глобальный логгер. До вызова Init пишет в stderr с уровнем info,
// поэтому пакеты можно использовать в тестах без явной инициализации.
var Log = logrus.New()

// Init настраивает глобальный логгер из переменных окружения
// LOG_LEVEL (debug, info, warn, ...) и LOG_FORMAT (json | text).
func Init() {
	InitWithOutput(os.Stdout)
}

// InitWithOutput — то же, что Init, но с явным приёмником вывода.
func InitWithOutput(out io.Writer) {
	Log = logrus.New()

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}
	Log.SetOutput(out)
}

// For возвращает логгер с полем component.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
