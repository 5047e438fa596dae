package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken — токен не прошёл проверку: подпись, формат или срок действия.
var ErrInvalidToken = errors.New("invalid token")

// Claims — утверждения токена сессии: стандартные плюс ID учётной записи.
type Claims struct {
	AccountID string `json:"uid"`
	jwt.RegisteredClaims
}

// SessionIssuer выпускает и проверяет подписанные (HS256) токены сессии.
// Секрет передаётся при старте процесса; его смена делает недействительными
// все выпущенные токены.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionIssuer создаёт SessionIssuer. ttl <= 0 отключает истечение токенов.
func NewSessionIssuer(secret []byte, ttl time.Duration) *SessionIssuer {
	s := make([]byte, len(secret))
	copy(s, secret)
	return &SessionIssuer{secret: s, ttl: ttl, now: time.Now}
}

// TTL возвращает время жизни выпускаемых токенов.
func (s *SessionIssuer) TTL() time.Duration { return s.ttl }

// Issue выпускает токен для учётной записи.
func (s *SessionIssuer) Issue(accountID string) (string, error) {
	if accountID == "" {
		return "", errors.New("empty account id")
	}
	now := s.now()
	claims := Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify проверяет токен и возвращает ID учётной записи.
// Любая проблема с токеном даёт ErrInvalidToken.
func (s *SessionIssuer) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	}
	if s.ttl > 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.AccountID == "" {
		return "", ErrInvalidToken
	}
	return claims.AccountID, nil
}
