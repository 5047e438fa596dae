package handlers

import (
	"Valtify/internal/middleware"
	"Valtify/internal/model"
	"Valtify/internal/service"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// UserHandler обрабатывает регистрацию, вход и данные текущей сессии.
type UserHandler struct {
	Accounts *service.AccountService
	Logger   *zap.SugaredLogger
}

func NewUserHandler(accounts *service.AccountService, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{Accounts: accounts, Logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

type authResponse struct {
	User  userDTO `json:"user"`
	Token string  `json:"token"`
}

func toUserDTO(a *model.Account) userDTO {
	return userDTO{ID: a.ID, Email: a.Email, CreatedAt: a.CreatedAt, LastLoginAt: a.LastLoginAt}
}

// Register регистрация пользователя
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	sess, err := h.Accounts.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.Logger, "Register", err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{User: toUserDTO(sess.Account), Token: sess.Token})
}

// Login авторизация пользователя
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	sess, err := h.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		writeServiceError(w, h.Logger, "Login", err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{User: toUserDTO(sess.Account), Token: sess.Token})
}

// Me возвращает владельца текущей сессии
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]userDTO{"user": toUserDTO(account)})
}
