package commands

import (
	"Valtify/internal/config"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type itemGetCmd struct{}

func (itemGetCmd) Name() string { return "item-get" }
func (itemGetCmd) Description() string {
	return "Показать запись по id"
}
func (itemGetCmd) Usage() string { return "item-get <id>" }

func (itemGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	tok, err := loadToken(cfg)
	if err != nil {
		return err
	}
	var resp struct {
		Item itemView `json:"item"`
	}
	if err := newClient(cfg).Do(ctx, http.MethodGet, "/api/vault/"+url.PathEscape(args[0]), tok, nil, &resp); err != nil {
		return sessionErr(err)
	}
	printItem(resp.Item)
	return nil
}

func printItem(it itemView) {
	fmt.Fprintf(Out, "id:        %s\n", it.ID)
	fmt.Fprintf(Out, "category:  %s\n", it.Category)
	fmt.Fprintf(Out, "title:     %s\n", it.Title)
	fmt.Fprintf(Out, "created:   %s\n", it.CreatedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(Out, "updated:   %s\n", it.UpdatedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(Out, "data:      %s\n", it.Data)
}

type itemDeleteCmd struct{}

func (itemDeleteCmd) Name() string        { return "item-delete" }
func (itemDeleteCmd) Description() string { return "Удалить запись по id" }
func (itemDeleteCmd) Usage() string       { return "item-delete <id>" }

func (itemDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	tok, err := loadToken(cfg)
	if err != nil {
		return err
	}
	if err := newClient(cfg).Do(ctx, http.MethodDelete, "/api/vault/"+url.PathEscape(args[0]), tok, nil, nil); err != nil {
		return sessionErr(err)
	}
	fmt.Fprintf(Out, "Deleted: %s\n", args[0])
	return nil
}

func init() {
	RegisterCmd(itemGetCmd{})
	RegisterCmd(itemDeleteCmd{})
}
