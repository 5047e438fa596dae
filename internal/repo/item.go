package repo

import (
	"Valtify/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// ItemRepository определяет контракт доступа к Item для слоя сервиса.
// Все методы принимают accountID и фильтруют по нему: чужая запись
// неотличима от отсутствующей (ErrNotFound).
type ItemRepository interface {
	// Create вставляет новую запись.
	Create(ctx context.Context, it *model.Item) error

	// ListByAccount возвращает записи пользователя, новые первыми.
	ListByAccount(ctx context.Context, accountID string) ([]model.Item, error)

	// GetByID возвращает запись пользователя по её ID.
	GetByID(ctx context.Context, accountID, id string) (*model.Item, error)

	// Update применяет частичное обновление одним UPDATE и возвращает запись.
	Update(ctx context.Context, accountID, id string, updates map[string]any) (*model.Item, error)

	// Delete удаляет запись пользователя.
	Delete(ctx context.Context, accountID, id string) error
}

type itemRepo struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB, timeout time.Duration) ItemRepository {
	return &itemRepo{db: db, timeout: timeout}
}

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return classify(r.db.WithContext(ctx).Omit("Account").Create(it).Error)
}

func (r *itemRepo) ListByAccount(ctx context.Context, accountID string) ([]model.Item, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	items := make([]model.Item, 0)
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&items).Error
	if err != nil {
		return nil, classify(err)
	}
	return items, nil
}

func (r *itemRepo) GetByID(ctx context.Context, accountID, id string) (*model.Item, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var it model.Item
	err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		First(&it).Error
	if err != nil {
		return nil, classify(err)
	}
	return &it, nil
}

func (r *itemRepo) Update(ctx context.Context, accountID, id string, updates map[string]any) (*model.Item, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if updates == nil {
		updates = map[string]any{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}

	tx := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("id = ? AND account_id = ?", id, accountID).
		Updates(updates)
	if tx.Error != nil {
		return nil, classify(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var it model.Item
	err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		First(&it).Error
	if err != nil {
		return nil, classify(err)
	}
	return &it, nil
}

func (r *itemRepo) Delete(ctx context.Context, accountID, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tx := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		Delete(&model.Item{})
	if tx.Error != nil {
		return classify(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
