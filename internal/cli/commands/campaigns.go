package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"LoreKeeper/internal/cli/api"
	"LoreKeeper/internal/config"
	"LoreKeeper/internal/model"
)

type campaignsCmd struct{}

func (campaignsCmd) Name() string        { return "campaigns" }
func (campaignsCmd) Description() string { return "List your campaigns" }
func (campaignsCmd) Usage() string       { return "campaigns" }

func (campaignsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	resp, body, err := api.GetJSON(endpoint(cfg, "/api/campaigns/"), token())
	if err != nil {
		return err
	}
	if err := checkStatus(resp, body); err != nil {
		return err
	}
	var campaigns []model.Campaign
	if err := json.Unmarshal(body, &campaigns); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(campaigns) == 0 {
		fmt.Fprintln(Out, "No campaigns yet. Create one with 'campaign-add <title>'.")
		return nil
	}
	for _, c := range campaigns {
		fmt.Fprintf(Out, "%s  %s\n", c.ID, c.Title)
	}
	return nil
}

type campaignAddCmd struct{}

func (campaignAddCmd) Name() string        { return "campaign-add" }
func (campaignAddCmd) Description() string { return "Create a campaign" }
func (campaignAddCmd) Usage() string       { return "campaign-add <title>" }

func (campaignAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	payload := map[string]string{"title": args[0]}
	resp, body, err := api.PostJSON(endpoint(cfg, "/api/campaigns/"), payload, token())
	if err != nil {
		return err
	}
	if err := checkStatus(resp, body); err != nil {
		return err
	}
	var c model.Campaign
	if err := json.Unmarshal(body, &c); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Created campaign %s (%s)\n", c.Title, c.ID)
	return nil
}

type campaignCmd struct{}

func (campaignCmd) Name() string        { return "campaign" }
func (campaignCmd) Description() string { return "Show one campaign" }
func (campaignCmd) Usage() string       { return "campaign <campaign-id>" }

func (campaignCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	resp, body, err := api.GetJSON(endpoint(cfg, "/api/campaigns/%s", args[0]), token())
	if err != nil {
		return err
	}
	if err := checkStatus(resp, body); err != nil {
		return err
	}
	var c model.Campaign
	if err := json.Unmarshal(body, &c); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Campaign: %s\n", c.Title)
	if c.ElevatorPitch != "" {
		fmt.Fprintf(Out, "Pitch: %s\n", c.ElevatorPitch)
	}
	if c.Framework != "" {
		fmt.Fprintf(Out, "Framework: %s\n", c.Framework)
	}
	for _, truth := range c.Truths {
		fmt.Fprintf(Out, "Truth: %s\n", truth)
	}
	for _, f := range c.Fronts {
		fmt.Fprintf(Out, "Front: %s (progress %d)\n", f.Name, f.Progress)
	}
	if c.ActiveSession != "" {
		fmt.Fprintf(Out, "Active session: %s\n", c.ActiveSession)
	}
	return nil
}

func init() {
	RegisterCmd(campaignsCmd{})
	RegisterCmd(campaignAddCmd{})
	RegisterCmd(campaignCmd{})
}
