package commands

import (
	"Valtify/internal/config"
	"context"
	"fmt"
	"net/http"
)

type itemAddCmd struct{}

func (itemAddCmd) Name() string { return "item-add" }
func (itemAddCmd) Description() string {
	return "Добавить запись (category: password|note|document|card|identity)"
}
func (itemAddCmd) Usage() string { return "item-add <category> <title> <text>" }

func (itemAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 || args[1] == "" || args[2] == "" {
		return ErrUsage
	}
	tok, err := loadToken(cfg)
	if err != nil {
		return err
	}
	req := map[string]string{"category": args[0], "title": args[1], "data": args[2]}
	var resp struct {
		Item itemView `json:"item"`
	}
	if err := newClient(cfg).Do(ctx, http.MethodPost, "/api/vault", tok, req, &resp); err != nil {
		return sessionErr(err)
	}
	fmt.Fprintln(Out, "Created:")
	fmt.Fprintf(Out, "  id:       %s\n", resp.Item.ID)
	fmt.Fprintf(Out, "  category: %s\n", resp.Item.Category)
	fmt.Fprintf(Out, "  title:    %s\n", resp.Item.Title)
	return nil
}

func init() { RegisterCmd(itemAddCmd{}) }
