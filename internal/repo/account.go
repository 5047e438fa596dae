package repo

import (
	"Valtify/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// AccountRepository — доступ к учётным записям.
// Уникальность email обеспечивается индексом БД: из двух одновременных
// CreateAccount с одним адресом успешен ровно один, второй получает ErrDuplicate.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *model.Account) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	GetAccountByID(ctx context.Context, id string) (*model.Account, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

type accountRepo struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewAccountRepository создаёт реализацию репозитория для Account.
// timeout ограничивает каждый запрос; 0 — без ограничения.
func NewAccountRepository(db *gorm.DB, timeout time.Duration) AccountRepository {
	return &accountRepo{db: db, timeout: timeout}
}

func (r *accountRepo) CreateAccount(ctx context.Context, account *model.Account) (*model.Account, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return nil, classify(err)
	}
	return account, nil
}

func (r *accountRepo) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var a model.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, classify(err)
	}
	return &a, nil
}

func (r *accountRepo) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var a model.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, classify(err)
	}
	return &a, nil
}

func (r *accountRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tx := r.db.WithContext(ctx).Model(&model.Account{}).Where("id = ?", id).Update("last_login_at", at)
	if tx.Error != nil {
		return classify(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
