package repo

import (
	"Valtify/internal/model"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// InitDB открывает БД по DSN и применяет миграции моделей.
// DSN вида postgres://..., postgresql://... или "host=..." открывается через pgx,
// всё остальное считается путём к файлу SQLite (драйвер modernc.org/sqlite).
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(Dialector(dsn), &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log.New(os.Stderr, "gorm ", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Dialector выбирает драйвер gorm по виду DSN.
func Dialector(dsn string) gorm.Dialector {
	if IsPostgresDSN(dsn) {
		return postgres.Open(dsn)
	}
	return gormsqlite.Dialector{DriverName: "sqlite", DSN: SQLiteDSN(dsn)}
}

// Migrate создаёт/обновляет таблицы accounts и items.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Account{}, &model.Item{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// Ping проверяет доступность БД.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return classify(err)
	}
	return classify(sqlDB.PingContext(ctx))
}

func IsPostgresDSN(dsn string) bool {
	d := strings.ToLower(strings.TrimSpace(dsn))
	return strings.HasPrefix(d, "postgres://") ||
		strings.HasPrefix(d, "postgresql://") ||
		strings.HasPrefix(d, "host=")
}

// SQLiteDSN включает внешние ключи (нужны для каскадного удаления items)
// и busy_timeout, если они не заданы явно.
func SQLiteDSN(dsn string) string {
	out := dsn
	add := func(p string) {
		if strings.Contains(out, "?") {
			out += "&" + p
		} else {
			out += "?" + p
		}
	}
	if !strings.Contains(out, "foreign_keys") {
		add("_pragma=foreign_keys(1)")
	}
	if !strings.Contains(out, "busy_timeout") {
		add("_pragma=busy_timeout(5000)")
	}
	return out
}
