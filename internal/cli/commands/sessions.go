package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"LoreKeeper/internal/cli/api"
	"LoreKeeper/internal/config"
	"LoreKeeper/internal/model"
)

type sessionsCmd struct{}

func (sessionsCmd) Name() string        { return "sessions" }
func (sessionsCmd) Description() string { return "List a campaign's sessions" }
func (sessionsCmd) Usage() string       { return "sessions <campaign-id>" }

func (sessionsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	resp, body, err := api.GetJSON(endpoint(cfg, "/api/campaigns/%s/sessions/", args[0]), token())
	if err != nil {
		return err
	}
	if err := checkStatus(resp, body); err != nil {
		return err
	}
	var sessions []model.Session
	if err := json.Unmarshal(body, &sessions); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(Out, "No sessions yet. Start one with 'session-new'.")
		return nil
	}
	for _, s := range sessions {
		date := "-"
		if s.Date != nil {
			date = s.Date.Format("2006-01-02")
		}
		fmt.Fprintf(Out, "#%02d  %s  %-9s  %s  %s\n", s.Number, s.ID, s.Status, date, s.Title)
	}
	return nil
}

type sessionNewCmd struct{}

func (sessionNewCmd) Name() string        { return "session-new" }
func (sessionNewCmd) Description() string { return "Start a new session for the campaign" }
func (sessionNewCmd) Usage() string       { return "session-new <campaign-id>" }

func (sessionNewCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	resp, body, err := api.PostJSON(endpoint(cfg, "/api/campaigns/%s/sessions/", args[0]), struct{}{}, token())
	if err != nil {
		return err
	}
	if err := checkStatus(resp, body); err != nil {
		return err
	}
	var s model.Session
	if err := json.Unmarshal(body, &s); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Created session #%02d (%s)\n", s.Number, s.ID)
	return nil
}

type sessionCmd struct{}

func (sessionCmd) Name() string        { return "session" }
func (sessionCmd) Description() string { return "Show one session with links and usage markers" }
func (sessionCmd) Usage() string       { return "session <campaign-id> <session-id>" }

func (sessionCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	resp, body, err := api.GetJSON(endpoint(cfg, "/api/campaigns/%s/sessions/%s", args[0], args[1]), token())
	if err != nil {
		return err
	}
	if err := checkStatus(resp, body); err != nil {
		return err
	}
	var s model.Session
	if err := json.Unmarshal(body, &s); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Session #%02d  %s  (%s)\n", s.Number, s.Title, s.Status)
	if s.Date != nil {
		fmt.Fprintf(Out, "Date: %s\n", s.Date.Format("2006-01-02"))
	}
	if s.StrongStart != "" {
		fmt.Fprintf(Out, "Strong start: %s\n", s.StrongStart)
	}
	if s.Recap != "" {
		fmt.Fprintf(Out, "Recap: %s\n", s.Recap)
	}
	for _, id := range s.LinkedItems {
		marker := " "
		if s.UsedItems.Contains(id) {
			marker = "*"
		}
		fmt.Fprintf(Out, "Linked: [%s] %s\n", marker, id)
	}
	if s.Summary != "" {
		fmt.Fprintf(Out, "Summary: %s\n", s.Summary)
	}
	return nil
}

type sessionRmCmd struct{}

func (sessionRmCmd) Name() string        { return "session-rm" }
func (sessionRmCmd) Description() string { return "Delete a session, releasing its linked items" }
func (sessionRmCmd) Usage() string       { return "session-rm <campaign-id> <session-id>" }

func (sessionRmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	resp, body, err := api.DeleteJSON(endpoint(cfg, "/api/campaigns/%s/sessions/%s", args[0], args[1]), token())
	if err != nil {
		return err
	}
	if err := checkStatus(resp, body); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Session deleted")
	return nil
}

func init() {
	RegisterCmd(sessionsCmd{})
	RegisterCmd(sessionNewCmd{})
	RegisterCmd(sessionCmd{})
	RegisterCmd(sessionRmCmd{})
}
