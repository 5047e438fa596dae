package commands

import (
	"Valtify/internal/auth"
	"Valtify/internal/config"
	"Valtify/internal/crypto"
	"Valtify/internal/handlers"
	"Valtify/internal/repo"
	"Valtify/internal/service"
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// newTestConfig — конфиг клиента с файлом токена во временном каталоге.
func newTestConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	return &config.Config{
		ServerURL: serverURL,
		TokenFile: filepath.Join(t.TempDir(), "token"),
	}
}

// перехват вывода CLI на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// newVaultServer поднимает настоящий сервер поверх in-memory SQLite.
func newVaultServer(t *testing.T) *httptest.Server {
	t.Helper()
	dsn := repo.SQLiteDSN("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := repo.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := zap.NewNop().Sugar()
	codec, err := crypto.NewPayloadCodec([]byte("cli-test-payload-secret"))
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	accounts := service.NewAccountService(
		repo.NewAccountRepository(db, time.Second),
		auth.NewHasher(bcrypt.MinCost),
		auth.NewSessionIssuer([]byte("cli-test-secret"), time.Hour),
		log,
	)
	vault := service.NewVaultService(repo.NewItemRepository(db, time.Second), codec, log)
	health := func(ctx context.Context) error { return repo.Ping(ctx, db) }

	ts := httptest.NewServer(handlers.NewHandler(accounts, vault, health, log).Router)
	t.Cleanup(ts.Close)
	return ts
}
