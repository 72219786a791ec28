package lifecycle

import (
	"context"

	"LoreKeeper/internal/model"
)

// SessionPatch is a partial update of a session's editable fields. Nil
// means "leave as is". Linked items, usage markers and status are not
// patchable: those transitions go through LinkItem/UnlinkItem/MarkUsed/
// Conclude only.
type SessionPatch struct {
	Title       *string        `json:"title"`
	StrongStart *string        `json:"strong_start"`
	Recap       *string        `json:"recap"`
	Summary     *string        `json:"summary"`
	Notes       *model.NoteMap `json:"notes"`
}

// touchesGameplay reports whether the patch edits fields frozen at
// conclusion. Title and summary stay correctable afterwards.
func (p SessionPatch) touchesGameplay() bool {
	return p.StrongStart != nil || p.Recap != nil || p.Notes != nil
}

// UpdateSession applies a partial edit. Once a session is completed its
// gameplay fields are read-only; such a patch is rejected with
// ErrSessionCompleted and nothing changes.
func (m *Manager) UpdateSession(ctx context.Context, campaignID, sessionID string, patch SessionPatch) (*model.Session, error) {
	unlock := m.locks.Lock("session:" + sessionID)
	defer unlock()

	session, err := m.store.Sessions().GetByID(ctx, campaignID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed() && patch.touchesGameplay() {
		return nil, ErrSessionCompleted
	}

	if patch.Title != nil {
		session.Title = *patch.Title
	}
	if patch.StrongStart != nil {
		session.StrongStart = *patch.StrongStart
	}
	if patch.Recap != nil {
		session.Recap = *patch.Recap
	}
	if patch.Summary != nil {
		session.Summary = *patch.Summary
	}
	if patch.Notes != nil {
		session.Notes = *patch.Notes
	}

	if err := m.store.Sessions().Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
