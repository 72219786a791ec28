package ai

import (
	"context"

	"LoreKeeper/internal/model"
)

// Assistant answers DM questions with campaign context and drafts
// post-session summaries. It satisfies lifecycle.Summarizer.
type Assistant struct {
	gen Generator
}

func NewAssistant(gen Generator) *Assistant {
	return &Assistant{gen: gen}
}

// Ask runs one chat turn: the context is assembled into a system
// instruction and the query is sent as-is.
func (a *Assistant) Ask(ctx context.Context, mode, query string, pc PromptContext) (string, error) {
	return a.gen.Generate(ctx, BuildSystemPrompt(mode, pc), query)
}

// Summarize drafts the concluded session's narrative summary.
func (a *Assistant) Summarize(ctx context.Context, c *model.Campaign, s *model.Session) (string, error) {
	system := basePersona + "\n\nYou are writing the campaign log for: " + c.Title + "."
	return a.gen.Generate(ctx, system, BuildSummaryQuery(s))
}
