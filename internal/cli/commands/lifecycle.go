package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"LoreKeeper/internal/cli/api"
	"LoreKeeper/internal/config"
	"LoreKeeper/internal/model"
)

// itemAction posts {"item_id": ...} to a session lifecycle sub-resource.
func itemAction(cfg *config.Config, action string, args []string) (*model.Session, error) {
	url := endpoint(cfg, "/api/campaigns/%s/sessions/%s/%s", args[0], args[1], action)
	resp, body, err := api.PostJSON(url, map[string]string{"item_id": args[2]}, token())
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp, body); err != nil {
		return nil, err
	}
	var s model.Session
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &s, nil
}

type linkCmd struct{}

func (linkCmd) Name() string        { return "link" }
func (linkCmd) Description() string { return "Pull a vault item into a session" }
func (linkCmd) Usage() string       { return "link <campaign-id> <session-id> <item-id>" }

func (linkCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	s, err := itemAction(cfg, "link", args)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Session #%02d now has %d linked items\n", s.Number, len(s.LinkedItems))
	return nil
}

type unlinkCmd struct{}

func (unlinkCmd) Name() string        { return "unlink" }
func (unlinkCmd) Description() string { return "Return a linked item to the reserve pool" }
func (unlinkCmd) Usage() string       { return "unlink <campaign-id> <session-id> <item-id>" }

func (unlinkCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	s, err := itemAction(cfg, "unlink", args)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Session #%02d now has %d linked items\n", s.Number, len(s.LinkedItems))
	return nil
}

type useCmd struct{}

func (useCmd) Name() string        { return "use" }
func (useCmd) Description() string { return "Toggle the 'came up in play' marker on a linked item" }
func (useCmd) Usage() string       { return "use <campaign-id> <session-id> <item-id>" }

func (useCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	s, err := itemAction(cfg, "use", args)
	if err != nil {
		return err
	}
	if s.UsedItems.Contains(args[2]) {
		fmt.Fprintln(Out, "Marked as used")
	} else {
		fmt.Fprintln(Out, "Usage marker cleared")
	}
	return nil
}

type concludeCmd struct{}

func (concludeCmd) Name() string { return "conclude" }
func (concludeCmd) Description() string {
	return "Conclude a session: archive burned items, start the next one"
}
func (concludeCmd) Usage() string { return "conclude <campaign-id> <session-id> [summary]" }

func (concludeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	payload := map[string]string{}
	if len(args) > 2 {
		payload["summary"] = strings.Join(args[2:], " ")
	}
	url := endpoint(cfg, "/api/campaigns/%s/sessions/%s/conclude", args[0], args[1])
	resp, body, err := api.PostJSON(url, payload, token())
	if err != nil {
		return err
	}
	if err := checkStatus(resp, body); err != nil {
		return err
	}
	var result struct {
		Session model.Session `json:"session"`
		Next    model.Session `json:"next"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Session #%02d concluded, %d items kept in the record\n",
		result.Session.Number, len(result.Session.LinkedItems))
	fmt.Fprintf(Out, "Next session: #%02d (%s)\n", result.Next.Number, result.Next.ID)
	return nil
}

func init() {
	RegisterCmd(linkCmd{})
	RegisterCmd(unlinkCmd{})
	RegisterCmd(useCmd{})
	RegisterCmd(concludeCmd{})
}
