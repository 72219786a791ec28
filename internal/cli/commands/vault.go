package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"LoreKeeper/internal/cli/api"
	"LoreKeeper/internal/config"
	"LoreKeeper/internal/model"
)

type vaultCmd struct{}

func (vaultCmd) Name() string        { return "vault" }
func (vaultCmd) Description() string { return "List a campaign's vault, optionally by type" }
func (vaultCmd) Usage() string       { return "vault <campaign-id> [type]" }

func (vaultCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	url := endpoint(cfg, "/api/campaigns/%s/vault/", args[0])
	if len(args) > 1 {
		url += "?type=" + args[1]
	}
	resp, body, err := api.GetJSON(url, token())
	if err != nil {
		return err
	}
	if err := checkStatus(resp, body); err != nil {
		return err
	}
	var items []model.VaultItem
	if err := json.Unmarshal(body, &items); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(items) == 0 {
		fmt.Fprintln(Out, "Vault is empty.")
		return nil
	}
	for _, it := range items {
		fmt.Fprintf(Out, "%s  %-10s %-9s used:%d  %s\n", it.ID, it.Type, it.Status, it.UsageCount, it.Name())
	}
	return nil
}

type vaultAddCmd struct{}

func (vaultAddCmd) Name() string        { return "vault-add" }
func (vaultAddCmd) Description() string { return "Quick-create a vault item" }
func (vaultAddCmd) Usage() string       { return "vault-add <campaign-id> <type> <name> [description]" }

func (vaultAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	content := map[string]any{"name": args[2]}
	if len(args) > 3 {
		content["description"] = args[3]
	}
	payload := map[string]any{"type": args[1], "content": content}

	resp, body, err := api.PostJSON(endpoint(cfg, "/api/campaigns/%s/vault/", args[0]), payload, token())
	if err != nil {
		return err
	}
	if err := checkStatus(resp, body); err != nil {
		return err
	}
	var it model.VaultItem
	if err := json.Unmarshal(body, &it); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Created %s %q (%s)\n", it.Type, it.Name(), it.ID)
	return nil
}

type vaultRmCmd struct{}

func (vaultRmCmd) Name() string        { return "vault-rm" }
func (vaultRmCmd) Description() string { return "Delete a vault item permanently" }
func (vaultRmCmd) Usage() string       { return "vault-rm <campaign-id> <item-id>" }

func (vaultRmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	resp, body, err := api.DeleteJSON(endpoint(cfg, "/api/campaigns/%s/vault/%s", args[0], args[1]), token())
	if err != nil {
		return err
	}
	if err := checkStatus(resp, body); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Item deleted")
	return nil
}

func init() {
	RegisterCmd(vaultCmd{})
	RegisterCmd(vaultAddCmd{})
	RegisterCmd(vaultRmCmd{})
}
