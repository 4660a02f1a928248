package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Log общий логгер процесса. До вызова Init пишет в stderr с уровнем info.
var Log = logrus.New()

// Init настраивает общий логгер. Log не пересоздаётся: записи,
// полученные через Component до Init, пишут в тот же логгер.
func Init(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// Используем JSON формат для production, text для development
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// Component возвращает запись лога с полем component.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}

// Silence отключает вывод логов (используется в тестах).
func Silence() {
	Log.SetOutput(io.Discard)
}
