package commands

import (
	"Valtify/internal/config"
	"context"
	"fmt"
	"net/http"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show server health and current session" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	client := newClient(cfg)

	var health struct {
		Status string `json:"status"`
		DB     string `json:"db"`
	}
	if err := client.Do(ctx, http.MethodGet, "/api/health", "", nil, &health); err != nil {
		return sessionErr(err)
	}
	fmt.Fprintf(Out, "Server: %s (%s, db=%s)\n", cfg.ServerURL, health.Status, health.DB)

	tok, err := loadToken(cfg)
	if err != nil {
		fmt.Fprintln(Out, "Session: not logged in")
		return nil
	}
	var me struct {
		User userResponse `json:"user"`
	}
	if err := client.Do(ctx, http.MethodGet, "/api/user/me", tok, nil, &me); err != nil {
		return sessionErr(err)
	}
	fmt.Fprintf(Out, "Session: logged in as %s\n", me.User.Email)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
