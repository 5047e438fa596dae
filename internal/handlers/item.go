package handlers

import (
	"Valtify/internal/middleware"
	"Valtify/internal/service"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ItemHandler обрабатывает операции над записями хранилища.
// Владелец берётся только из контекста, положенного RequireAuth.
type ItemHandler struct {
	Vault  *service.VaultService
	Logger *zap.SugaredLogger
}

func NewItemHandler(vault *service.VaultService, logger *zap.SugaredLogger) *ItemHandler {
	return &ItemHandler{Vault: vault, Logger: logger}
}

type addItemRequest struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Data     string `json:"data"`
}

type updateItemRequest struct {
	Category *string `json:"category,omitempty"`
	Title    *string `json:"title,omitempty"`
	Data     *string `json:"data,omitempty"`
}

type itemDTO struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Data      string    `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toItemDTO(it service.VaultItem) itemDTO {
	return itemDTO{
		ID:        it.ID,
		Category:  it.Category,
		Title:     it.Title,
		Data:      it.Data,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

func ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return account.ID, true
}

// List список записей владельца
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	items, err := h.Vault.List(r.Context(), owner)
	if err != nil {
		writeServiceError(w, h.Logger, "ListItems", err)
		return
	}

	out := make([]itemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toItemDTO(it))
	}
	writeJSON(w, http.StatusOK, map[string][]itemDTO{"items": out})
}

// Add создание записи
func (h *ItemHandler) Add(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	it, err := h.Vault.Add(r.Context(), owner, service.AddInput{
		Category: req.Category,
		Title:    req.Title,
		Data:     req.Data,
	})
	if err != nil {
		writeServiceError(w, h.Logger, "AddItem", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]itemDTO{"item": toItemDTO(it)})
}

// Get одна запись владельца
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	it, err := h.Vault.Get(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, "GetItem", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]itemDTO{"item": toItemDTO(it)})
}

// Update частичное обновление записи (PUT и PATCH)
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	it, err := h.Vault.Update(r.Context(), owner, chi.URLParam(r, "id"), service.UpdateInput{
		Category: req.Category,
		Title:    req.Title,
		Data:     req.Data,
	})
	if err != nil {
		writeServiceError(w, h.Logger, "UpdateItem", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]itemDTO{"item": toItemDTO(it)})
}

// Delete удаление записи
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	if err := h.Vault.Delete(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.Logger, "DeleteItem", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "item deleted"})
}
