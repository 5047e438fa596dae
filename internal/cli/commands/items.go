package commands

import (
	"Valtify/internal/config"
	"context"
	"fmt"
	"net/http"
	"time"
)

type itemView struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Data      string    `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type itemsCmd struct{}

func (itemsCmd) Name() string { return "items" }
func (itemsCmd) Description() string {
	return "Показать все записи"
}
func (itemsCmd) Usage() string { return "items" }

func (itemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	tok, err := loadToken(cfg)
	if err != nil {
		return err
	}
	var resp struct {
		Items []itemView `json:"items"`
	}
	if err := newClient(cfg).Do(ctx, http.MethodGet, "/api/vault", tok, nil, &resp); err != nil {
		return sessionErr(err)
	}
	if len(resp.Items) == 0 {
		fmt.Fprintln(Out, "Нет записей")
		return nil
	}
	for _, it := range resp.Items {
		fmt.Fprintf(Out, "- %s  [%s] %s\n", it.ID, it.Category, it.Title)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(resp.Items))
	return nil
}

func init() { RegisterCmd(itemsCmd{}) }
