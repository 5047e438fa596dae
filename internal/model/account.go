package model

import "time"

// Account — серверная модель учётной записи пользователя.
type Account struct {
	ID    string `gorm:"primaryKey;type:uuid" json:"id"`
	Email string `gorm:"not null;uniqueIndex;size:255" json:"email"` // нормализованный (lower-case) адрес

	// bcrypt-верификатор пароля, наружу не отдаётся
	PasswordHash string `gorm:"not null" json:"-"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
