package commands

import (
	"context"
	"fmt"

	"LoreKeeper/internal/cli/api"
	"LoreKeeper/internal/cli/auth"
	"LoreKeeper/internal/config"
)

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and store auth cookie" }
func (registerCmd) Usage() string       { return "register <login> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	login, password := args[0], args[1]

	resp, body, err := api.PostJSON(endpoint(cfg, "/api/user/register"), credentials{login, password}, "")
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
	fmt.Fprintln(Out, "Registered and logged in as", login)
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
