package service

import (
	"Valtify/internal/auth"
	"Valtify/internal/model"
	"Valtify/internal/repo"
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MinPasswordLen = 6  // в символах
	MaxPasswordLen = 72 // предел bcrypt в байтах
	MaxEmailLen    = 255
)

// Session — результат успешной регистрации или входа.
type Session struct {
	Account *model.Account
	Token   string
}

// AccountService инкапсулирует регистрацию, вход и проверку токенов.
type AccountService struct {
	repo     repo.AccountRepository
	hasher   *auth.Hasher
	sessions *auth.SessionIssuer
	logger   *zap.SugaredLogger
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAccountService(r repo.AccountRepository, hasher *auth.Hasher, sessions *auth.SessionIssuer, logger *zap.SugaredLogger) *AccountService {
	return &AccountService{
		repo:     r,
		hasher:   hasher,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// NormalizeEmail приводит email к каноническому виду для поиска и уникальности.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return invalidf("email is required")
	}
	if len(email) > MaxEmailLen {
		return invalidf("email is too long")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalidf("email is malformed")
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return invalidf("password must be at least %d characters", MinPasswordLen)
	}
	if len(password) > MaxPasswordLen {
		return invalidf("password must be at most %d bytes", MaxPasswordLen)
	}
	return nil
}

// Register создаёт учётную запись и сразу выпускает токен сессии.
func (s *AccountService) Register(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, invalidf("password cannot be hashed")
	}

	now := s.now().UTC()
	account := &model.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// уникальность email обеспечивает индекс БД
	created, err := s.repo.CreateAccount(ctx, account)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, storeErr("create account", err)
	}

	token, err := s.sessions.Issue(created.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	s.logger.Infow("account registered", "account_id", created.ID)
	return &Session{Account: created, Token: token}, nil
}

// Login проверяет пароль и выпускает токен. Неизвестный email и неверный
// пароль неразличимы: оба дают ErrUnauthorized.
func (s *AccountService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalidf("email and password are required")
	}

	account, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// выравниваем время ответа с веткой существующего аккаунта
			s.hasher.Verify(password, s.dummyVerifier())
			return nil, ErrUnauthorized
		}
		return nil, storeErr("get account", err)
	}

	// bcrypt сравнивает только первые 72 байта, длинный пароль не может быть верным
	if len(password) > MaxPasswordLen {
		s.hasher.Verify(password[:MaxPasswordLen], s.dummyVerifier())
		return nil, ErrUnauthorized
	}
	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, ErrUnauthorized
	}

	now := s.now().UTC()
	if err := s.repo.TouchLastLogin(ctx, account.ID, now); err != nil {
		s.logger.Warnw("failed to update last login", "account_id", account.ID, "error", err)
	} else {
		account.LastLoginAt = &now
	}

	token, err := s.sessions.Issue(account.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Account: account, Token: token}, nil
}

// Authenticate проверяет токен и подтверждает, что учётная запись существует.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*model.Account, error) {
	accountID, err := s.sessions.Verify(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return s.Resolve(ctx, accountID)
}

// Resolve возвращает учётную запись по ID. Удалённая запись — ErrUnauthorized.
func (s *AccountService) Resolve(ctx context.Context, accountID string) (*model.Account, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return nil, ErrUnauthorized
	}
	account, err := s.repo.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, storeErr("resolve account", err)
	}
	return account, nil
}

func (s *AccountService) dummyVerifier() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(uuid.NewString())
		if err != nil {
			s.logger.Errorw("failed to prepare dummy verifier", "error", err)
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
