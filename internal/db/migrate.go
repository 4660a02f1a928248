package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/hvacsite/internal/logger"
)

// migrationLogger пишет сообщения golang-migrate в общий логгер.
type migrationLogger struct {
	log *logrus.Entry
}

func (l migrationLogger) Printf(format string, v ...any) {
	l.log.Infof(format, v...)
}

func (l migrationLogger) Verbose() bool {
	return l.log.Logger.IsLevelEnabled(logrus.DebugLevel)
}

// RunMigrations применяет *.up.sql из каталога. Отдельное соединение
// открывается по DSN вида postgres://, пул приложения не затрагивается.
func RunMigrations(dsn, migrationsDir string) error {
	m, err := migrate.New("file://"+migrationsDir, dsn)
	if err != nil {
		return fmt.Errorf("postgres: не удалось подготовить миграции: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			logger.Component("db").WithError(err).Warn("не удалось закрыть мигратор")
		}
	}()

	m.Log = migrationLogger{log: logger.Component("db")}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("новых миграций нет")
			return nil
		}
		return fmt.Errorf("postgres: не удалось применить миграции: %w", err)
	}
	m.Log.Printf("миграции применены")
	return nil
}
