package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"LoreKeeper/internal/cli/api"
	"LoreKeeper/internal/cli/auth"
	"LoreKeeper/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Check server connection and auth state" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	resp, body, err := api.PostJSON(endpoint(cfg, "/api/user/test"), struct{}{}, token())
	if err != nil {
		return err
	}
	if err := checkStatus(resp, body); err != nil {
		return err
	}
	var dr struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(body, &dr); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	login, _ := auth.LoadLastLogin()
	fmt.Fprintf(Out, "Server: %s\nStatus: %s\nUser: %s\n", cfg.ServerURL, dr.Result, login)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
