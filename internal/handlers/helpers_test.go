package handlers_test

import (
	"Valtify/internal/auth"
	"Valtify/internal/crypto"
	"Valtify/internal/handlers"
	"Valtify/internal/repo"
	"Valtify/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

const (
	testAuthSecret    = "test-secret"
	testPayloadSecret = "test-payload-secret-0123456789"
)

// newTestDB — отдельная in-memory SQLite база на каждый тест.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := repo.SQLiteDSN("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repo.Migrate(db))
	return db
}

// newRouter собирает полный стек поверх db с заданным секретом подписи.
func newRouter(t *testing.T, db *gorm.DB, authSecret string, ttl time.Duration) http.Handler {
	t.Helper()
	logger := zap.NewNop().Sugar()

	codec, err := crypto.NewPayloadCodec([]byte(testPayloadSecret))
	require.NoError(t, err)

	accounts := service.NewAccountService(
		repo.NewAccountRepository(db, time.Second),
		auth.NewHasher(bcrypt.MinCost),
		auth.NewSessionIssuer([]byte(authSecret), ttl),
		logger,
	)
	vault := service.NewVaultService(repo.NewItemRepository(db, time.Second), codec, logger)
	health := func(ctx context.Context) error { return repo.Ping(ctx, db) }

	return handlers.NewHandler(accounts, vault, health, logger).Router
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return newRouter(t, newTestDB(t), testAuthSecret, time.Hour)
}

// doJSON выполняет запрос к роутеру; body == nil — без тела, string — как есть.
func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

type authResp struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
	Token string `json:"token"`
}

type itemJSON struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Data      string    `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type itemResp struct {
	Item itemJSON `json:"item"`
}

type itemsResp struct {
	Items []itemJSON `json:"items"`
}

type errResp struct {
	Error string `json:"error"`
}

func register(t *testing.T, h http.Handler, email, password string) authResp {
	t.Helper()
	rr := doJSON(t, h, http.MethodPost, "/api/user/register", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeBody[authResp](t, rr)
}

func addItem(t *testing.T, h http.Handler, token, category, title, data string) itemJSON {
	t.Helper()
	rr := doJSON(t, h, http.MethodPost, "/api/vault", token, map[string]string{
		"category": category, "title": title, "data": data,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeBody[itemResp](t, rr).Item
}
