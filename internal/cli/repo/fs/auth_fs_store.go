package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"Valtify/internal/cli/repo"
)

// ErrNoToken — токен ещё не сохранён (пользователь не входил или вышел).
var ErrNoToken = errors.New("no stored token")

// AuthFSStore — файловое хранилище токена сессии для CLI.
// Файл создаётся с правами 0600, каталог — 0700.
type AuthFSStore struct {
	Path string
}

var _ repo.TokenStore = AuthFSStore{}

// Save сохраняет токен в файл.
func (s AuthFSStore) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(s.Path, []byte(token), 0o600); err != nil {
		return err
	}
	// WriteFile не меняет права уже существующего файла
	return os.Chmod(s.Path, 0o600)
}

// Load читает токен из файла. Отсутствующий или пустой файл — ErrNoToken.
func (s AuthFSStore) Load() (string, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	tok := strings.TrimSpace(string(b))
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// Clear удаляет сохранённый токен. Отсутствие файла — не ошибка.
func (s AuthFSStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
