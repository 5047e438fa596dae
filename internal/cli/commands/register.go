package commands

import (
	"Valtify/internal/cli/api"
	"Valtify/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Register a new account and store the session token" }
func (registerCmd) Usage() string       { return "register <email> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	var resp authResponse
	err := newClient(cfg).Do(ctx, http.MethodPost, "/api/user/register", "",
		credentialsRequest{Email: args[0], Password: args[1]}, &resp)
	if err != nil {
		if api.IsStatus(err, http.StatusConflict) {
			return errors.New("email already registered")
		}
		return err
	}
	if err := tokenStore(cfg).Save(resp.Token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	fmt.Fprintf(Out, "Registered %s\n", resp.User.Email)
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
