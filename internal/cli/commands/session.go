package commands

import (
	"Valtify/internal/cli/api"
	"Valtify/internal/cli/repo"
	fsrepo "Valtify/internal/cli/repo/fs"
	"Valtify/internal/config"
	"errors"
	"fmt"
	"net/http"
)

// ErrNotLoggedIn — команда требует сессию, а токена нет.
var ErrNotLoggedIn = errors.New("not logged in: run `login <email> <password>` first")

func newClient(cfg *config.Config) *api.Client {
	return api.New(cfg.ServerURL)
}

func tokenStore(cfg *config.Config) repo.TokenStore {
	return fsrepo.AuthFSStore{Path: cfg.TokenFile}
}

// loadToken возвращает сохранённый токен или ErrNotLoggedIn.
func loadToken(cfg *config.Config) (string, error) {
	tok, err := tokenStore(cfg).Load()
	if err != nil {
		if errors.Is(err, fsrepo.ErrNoToken) {
			return "", ErrNotLoggedIn
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	return tok, nil
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionErr делает ответы сервера понятными пользователю.
func sessionErr(err error) error {
	switch {
	case api.IsStatus(err, http.StatusUnauthorized):
		return errors.New("session is invalid or expired: run `login <email> <password>`")
	case api.IsStatus(err, http.StatusNotFound):
		return errors.New("item not found")
	case api.IsStatus(err, http.StatusServiceUnavailable):
		return errors.New("server is temporarily unavailable, try again")
	}
	return err
}
