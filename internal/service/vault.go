package service

import (
	"Valtify/internal/crypto"
	"Valtify/internal/model"
	"Valtify/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MaxTitleLen    = 255
	MaxCategoryLen = 50
	MaxDataLen     = 32 * 1024
)

// VaultItem — запись хранилища с расшифрованным содержимым.
type VaultItem struct {
	ID        string
	Category  string
	Title     string
	Data      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AddInput — поля новой записи.
type AddInput struct {
	Category string
	Title    string
	Data     string
}

// UpdateInput — частичное обновление: nil означает «не менять».
type UpdateInput struct {
	Category *string
	Title    *string
	Data     *string
}

// VaultService — операции над записями одной учётной записи.
// ownerID всегда берётся из проверенной сессии, а не из запроса.
type VaultService struct {
	repo   repo.ItemRepository
	codec  *crypto.PayloadCodec
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewVaultService(r repo.ItemRepository, codec *crypto.PayloadCodec, logger *zap.SugaredLogger) *VaultService {
	return &VaultService{repo: r, codec: codec, logger: logger, now: time.Now}
}

func normalizeCategory(c string) (string, error) {
	c = strings.TrimSpace(c)
	if c == "" {
		return model.CategoryNote, nil
	}
	if utf8.RuneCountInString(c) > MaxCategoryLen {
		return "", invalidf("category is too long")
	}
	return c, nil
}

func normalizeTitle(t string) (string, error) {
	t = strings.TrimSpace(t)
	if t == "" {
		return "", invalidf("title is required")
	}
	if utf8.RuneCountInString(t) > MaxTitleLen {
		return "", invalidf("title is too long")
	}
	return t, nil
}

func validateData(d string) error {
	if d == "" {
		return invalidf("data is required")
	}
	if len(d) > MaxDataLen {
		return invalidf("data is too large")
	}
	return nil
}

// validItemID: не-UUID не может существовать, для клиента это NotFound.
func validItemID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// List возвращает записи владельца, новые первыми. Пустой список — не ошибка.
func (s *VaultService) List(ctx context.Context, ownerID string) ([]VaultItem, error) {
	items, err := s.repo.ListByAccount(ctx, ownerID)
	if err != nil {
		return nil, storeErr("list items", err)
	}
	out := make([]VaultItem, 0, len(items))
	for i := range items {
		vi, err := s.decode(ownerID, &items[i])
		if err != nil {
			return nil, err
		}
		out = append(out, vi)
	}
	return out, nil
}

// Add создаёт запись владельца.
func (s *VaultService) Add(ctx context.Context, ownerID string, in AddInput) (VaultItem, error) {
	category, err := normalizeCategory(in.Category)
	if err != nil {
		return VaultItem{}, err
	}
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return VaultItem{}, err
	}
	if err := validateData(in.Data); err != nil {
		return VaultItem{}, err
	}

	id := uuid.NewString()
	payload, nonce, err := s.codec.Seal(ownerID, id, []byte(in.Data))
	if err != nil {
		return VaultItem{}, fmt.Errorf("seal payload: %w", err)
	}

	now := s.now().UTC()
	it := &model.Item{
		ID:        id,
		AccountID: ownerID,
		Category:  category,
		Title:     title,
		Payload:   payload,
		Nonce:     nonce,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return VaultItem{}, storeErr("create item", err)
	}
	s.logger.Debugw("item created", "account_id", ownerID, "item_id", id)

	return VaultItem{
		ID:        id,
		Category:  category,
		Title:     title,
		Data:      in.Data,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Get возвращает запись владельца. Чужая и несуществующая запись — ErrNotFound.
func (s *VaultService) Get(ctx context.Context, ownerID, itemID string) (VaultItem, error) {
	if !validItemID(itemID) {
		return VaultItem{}, ErrNotFound
	}
	it, err := s.repo.GetByID(ctx, ownerID, itemID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return VaultItem{}, ErrNotFound
		}
		return VaultItem{}, storeErr("get item", err)
	}
	return s.decode(ownerID, it)
}

// Update частично обновляет запись владельца и обновляет UpdatedAt.
func (s *VaultService) Update(ctx context.Context, ownerID, itemID string, in UpdateInput) (VaultItem, error) {
	if in.Category == nil && in.Title == nil && in.Data == nil {
		return VaultItem{}, invalidf("nothing to update")
	}

	updates := map[string]any{}
	if in.Category != nil {
		c, err := normalizeCategory(*in.Category)
		if err != nil {
			return VaultItem{}, err
		}
		updates["category"] = c
	}
	if in.Title != nil {
		t, err := normalizeTitle(*in.Title)
		if err != nil {
			return VaultItem{}, err
		}
		updates["title"] = t
	}
	if in.Data != nil {
		if err := validateData(*in.Data); err != nil {
			return VaultItem{}, err
		}
	}

	if !validItemID(itemID) {
		return VaultItem{}, ErrNotFound
	}
	if in.Data != nil {
		payload, nonce, err := s.codec.Seal(ownerID, itemID, []byte(*in.Data))
		if err != nil {
			return VaultItem{}, fmt.Errorf("seal payload: %w", err)
		}
		updates["payload"] = payload
		updates["nonce"] = nonce
	}
	updates["updated_at"] = s.now().UTC()

	it, err := s.repo.Update(ctx, ownerID, itemID, updates)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return VaultItem{}, ErrNotFound
		}
		return VaultItem{}, storeErr("update item", err)
	}
	return s.decode(ownerID, it)
}

// Delete удаляет запись владельца. Повторное удаление даёт ErrNotFound.
func (s *VaultService) Delete(ctx context.Context, ownerID, itemID string) error {
	if !validItemID(itemID) {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, ownerID, itemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return storeErr("delete item", err)
	}
	s.logger.Debugw("item deleted", "account_id", ownerID, "item_id", itemID)
	return nil
}

func (s *VaultService) decode(ownerID string, it *model.Item) (VaultItem, error) {
	plain, err := s.codec.Open(ownerID, it.ID, it.Payload, it.Nonce)
	if err != nil {
		s.logger.Errorw("failed to decrypt item payload", "account_id", ownerID, "item_id", it.ID, "error", err)
		return VaultItem{}, fmt.Errorf("decode item %s: %w", it.ID, err)
	}
	return VaultItem{
		ID:        it.ID,
		Category:  it.Category,
		Title:     it.Title,
		Data:      string(plain),
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}, nil
}
