package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"LoreKeeper/internal/cli/api"
	"LoreKeeper/internal/config"
)

type askCmd struct{}

func (askCmd) Name() string        { return "ask" }
func (askCmd) Description() string { return "Ask the AI assistant (prep mode)" }
func (askCmd) Usage() string       { return "ask <campaign-id> <question...>" }

func (askCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	return ask(cfg, args[0], "vault", "", strings.Join(args[1:], " "))
}

type askSessionCmd struct{}

func (askSessionCmd) Name() string        { return "ask-session" }
func (askSessionCmd) Description() string { return "Ask the AI assistant inside a running session" }
func (askSessionCmd) Usage() string       { return "ask-session <campaign-id> <session-id> <question...>" }

func (askSessionCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	return ask(cfg, args[0], "session", args[1], strings.Join(args[2:], " "))
}

func ask(cfg *config.Config, campaignID, mode, sessionID, query string) error {
	payload := map[string]string{"query": query, "mode": mode}
	if sessionID != "" {
		payload["session_id"] = sessionID
	}
	resp, body, err := api.PostJSON(endpoint(cfg, "/api/campaigns/%s/chat", campaignID), payload, token())
	if err != nil {
		return err
	}
	if err := checkStatus(resp, body); err != nil {
		return err
	}
	var r struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &r); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintln(Out, r.Response)
	return nil
}

func init() {
	RegisterCmd(askCmd{})
	RegisterCmd(askSessionCmd{})
}
