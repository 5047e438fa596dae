package commands

import (
	"Valtify/internal/config"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

type itemEditCmd struct{}

func (itemEditCmd) Name() string { return "item-edit" }
func (itemEditCmd) Description() string {
	return "Изменить поля записи; не указанные поля не меняются"
}
func (itemEditCmd) Usage() string {
	return "item-edit <id> [--category c] [--title t] [--data d]"
}

func (itemEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	// флаги допускаются и до, и после id
	fs := flag.NewFlagSet("item-edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	category := fs.String("category", "", "новая категория")
	title := fs.String("title", "", "новый заголовок")
	data := fs.String("data", "", "новое содержимое")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return ErrUsage
	}
	id := rest[0]
	if err := fs.Parse(rest[1:]); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	// отправляем только явно заданные флаги
	req := map[string]string{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "category":
			req["category"] = *category
		case "title":
			req["title"] = *title
		case "data":
			req["data"] = *data
		}
	})
	if len(req) == 0 {
		return ErrUsage
	}

	tok, err := loadToken(cfg)
	if err != nil {
		return err
	}
	var resp struct {
		Item itemView `json:"item"`
	}
	if err := newClient(cfg).Do(ctx, http.MethodPatch, "/api/vault/"+url.PathEscape(id), tok, req, &resp); err != nil {
		return sessionErr(err)
	}
	fmt.Fprintln(Out, "Updated:")
	fmt.Fprintf(Out, "  id:       %s\n", resp.Item.ID)
	for _, k := range []string{"category", "title", "data"} {
		if _, ok := req[k]; ok {
			fmt.Fprintf(Out, "  %s: <set>\n", k)
		}
	}
	return nil
}

func init() { RegisterCmd(itemEditCmd{}) }
