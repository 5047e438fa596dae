package model

import "time"

// Известные категории записей. Прочие значения хранятся как есть.
const (
	CategoryPassword = "password"
	CategoryNote     = "note"
	CategoryDocument = "document"
	CategoryCard     = "card"
	CategoryIdentity = "identity"
)

// Item — серверная модель элемента хранилища пользователя.
type Item struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	AccountID string `gorm:"not null;type:uuid;index:idx_items_account_created,priority:1"` // ссылка на accounts.id

	// Связи
	Account *Account `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Category string `gorm:"not null;size:50"`
	Title    string `gorm:"not null;size:255"`

	// Содержимое хранится только в зашифрованном виде (AES-GCM)
	Payload []byte `gorm:"not null"`
	Nonce   []byte `gorm:"not null"`

	CreatedAt time.Time `gorm:"index:idx_items_account_created,priority:2"`
	UpdatedAt time.Time
}
