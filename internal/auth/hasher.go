package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher превращает пароль в bcrypt-верификатор и проверяет пароль по нему.
type Hasher struct {
	cost int
}

// NewHasher создаёт Hasher с заданной стоимостью bcrypt.
// Значения вне допустимого диапазона заменяются на bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash возвращает соленый bcrypt-хеш пароля.
// Ошибка возможна только для паролей длиннее 72 байт.
func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify сравнивает пароль с верификатором. Некорректный верификатор — просто false.
func (h *Hasher) Verify(plain, verifier string) bool {
	if verifier == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(verifier), []byte(plain)) == nil
}
