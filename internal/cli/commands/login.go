package commands

import (
	"context"
	"fmt"

	"LoreKeeper/internal/cli/api"
	"LoreKeeper/internal/cli/auth"
	"LoreKeeper/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store auth cookie" }
func (loginCmd) Usage() string       { return "login <login> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	login, password := args[0], args[1]

	resp, body, err := api.PostJSON(endpoint(cfg, "/api/user/login"), credentials{login, password}, "")
	if err != nil {
		return err
	}
	if err := checkStatus(resp, body); err != nil {
		return err
	}
	if err := api.PersistAuthFromResponse(resp); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	_ = auth.SaveLastLogin(login)
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

func init() { RegisterCmd(loginCmd{}) }
