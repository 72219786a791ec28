package ai

import (
	"fmt"
	"strings"

	"LoreKeeper/internal/model"
)

// Chat modes. Vault mode helps with prep; session mode improvises inside a
// running session.
const (
	ModeVault   = "vault"
	ModeSession = "session"
)

const basePersona = `You are a Dungeon Master assistant versed in the 'Return of the Lazy Dungeon Master' methodology.
Your goal is to help the DM improvise narrative, connect plot threads and deepen the world, without game mechanics, numbers or statistics.`

// PromptContext holds everything the prompt builder may draw on. Session is
// nil outside session mode.
type PromptContext struct {
	Campaign *model.Campaign
	Items    []model.VaultItem
	Session  *model.Session
}

// BuildSystemPrompt composes the system instruction for a chat request:
// campaign framework, truths, fronts and player characters, plus the
// mode-specific slice of the vault.
func BuildSystemPrompt(mode string, pc PromptContext) string {
	var b strings.Builder
	b.WriteString(basePersona)
	b.WriteString("\n\nCAMPAIGN CONTEXT:\n")

	framework := pc.Campaign.Framework
	if framework == "" {
		framework = "Generic fantasy world."
	}
	fmt.Fprintf(&b, "- World framework: %s\n", framework)

	if truths := nonEmpty(pc.Campaign.Truths); len(truths) > 0 {
		fmt.Fprintf(&b, "- Campaign truths: %s\n", strings.Join(truths, ", "))
	}
	for _, f := range pc.Campaign.Fronts {
		fmt.Fprintf(&b, "- Front (threat): %s: %s (progress %d)\n", f.Name, f.Description, f.Progress)
	}
	for _, it := range pc.Items {
		if it.Type.IsCharacter() {
			fmt.Fprintf(&b, "- Player character: %s\n", describeContent(it))
		}
	}

	if mode == ModeSession && pc.Session != nil {
		writeSessionContext(&b, pc)
	} else {
		writeVaultContext(&b, pc)
	}
	return b.String()
}

func writeSessionContext(b *strings.Builder, pc PromptContext) {
	b.WriteString("\nWE ARE IN AN ACTIVE SESSION.\n")

	var active, secrets []string
	for _, it := range pc.Items {
		if pc.Session.LinkedItems.Contains(it.ID) {
			active = append(active, describeContent(it))
		}
		if it.Type == model.TypeSecret && it.Status == model.StatusReserve {
			secrets = append(secrets, describeContent(it))
		}
	}
	if len(active) > 0 {
		fmt.Fprintf(b, "Elements active in the scene: %s\n", strings.Join(active, "; "))
	}
	if len(secrets) > 0 {
		fmt.Fprintf(b, "Unrevealed secrets available to use: %s\n", strings.Join(secrets, "; "))
	}

	b.WriteString(`
SESSION INSTRUCTIONS:
1. When the DM asks what a character finds, look through the unrevealed secrets and see whether one connects.
2. Tie discoveries to the wishes and bonds of the player characters listed above.
3. Do not invent things at random when an existing secret or front can move the plot forward.
4. Be concise and evocative.
`)
}

func writeVaultContext(b *strings.Builder, pc PromptContext) {
	b.WriteString("\nWE ARE IN PREP MODE (VAULT).\n")

	var names []string
	for _, it := range pc.Items {
		if n := it.Name(); n != "" {
			names = append(names, n)
		}
	}
	if len(names) > 0 {
		fmt.Fprintf(b, "Existing vault items: %s\n", strings.Join(names, ", "))
	}

	b.WriteString(`
VAULT INSTRUCTIONS:
1. Help create new elements (NPCs, locations, secrets) that fit the framework and the fronts.
2. Keep everything new coherent with what already exists.
`)
}

// BuildSummaryQuery asks for the post-session narrative used as the next
// session's recap.
func BuildSummaryQuery(s *model.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session %d has just concluded. Write a short narrative summary (a few paragraphs) the DM can read back as a recap at the next sitting.\n", s.Number)
	if s.StrongStart != "" {
		fmt.Fprintf(&b, "Strong start: %s\n", s.StrongStart)
	}
	if s.Recap != "" {
		fmt.Fprintf(&b, "Recap going in: %s\n", s.Recap)
	}
	if general := s.Notes[model.NoteKeyGeneral]; general != "" {
		fmt.Fprintf(&b, "Session notes: %s\n", general)
	}
	for scope, text := range s.Notes {
		if scope != model.NoteKeyGeneral && text != "" {
			fmt.Fprintf(&b, "Notes for %s: %s\n", scope, text)
		}
	}
	return b.String()
}

func describeContent(it model.VaultItem) string {
	name := it.Name()
	desc, _ := it.Content["description"].(string)
	switch {
	case name != "" && desc != "":
		return name + ": " + desc
	case name != "":
		return name
	case desc != "":
		return desc
	default:
		return string(it.Type) + " " + it.ID
	}
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
