// Package lifecycle implements the session/vault lifecycle rules: how a
// vault item moves between reserve, active and archived as sessions are
// played and concluded, and how a session itself goes from planned to
// completed. All page-level variations of this logic live here, behind one
// manager, so no caller re-implements the transitions.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"LoreKeeper/internal/model"
	"LoreKeeper/internal/repo"
)

// Benign rule violations. Callers treat these as warnings, never as fatal
// failures: the state they guard is already consistent.
var (
	// ErrCharacterItem: character items bypass linking; they are always
	// available to the session's note-taking surface.
	ErrCharacterItem = errors.New("character items are not linked to sessions")
	// ErrItemArchived: archived items are permanently retired.
	ErrItemArchived = errors.New("item is archived")
	// ErrItemBusy: the item is active in a different session.
	ErrItemBusy = errors.New("item is linked to another session")
	// ErrItemNotLinked: usage markers require the item to be linked first.
	ErrItemNotLinked = errors.New("item is not linked to this session")
	// ErrSessionCompleted: completed is terminal; gameplay fields and the
	// usage accounting of a concluded session are never recomputed.
	ErrSessionCompleted = errors.New("session is already completed")
)

// ErrNotFound reports a missing campaign, session or item.
var ErrNotFound = gorm.ErrRecordNotFound

// Summarizer drafts a post-session narrative from the finished session.
// The AI assistant satisfies this; the manager treats it as an opaque
// text-generation collaborator.
type Summarizer interface {
	Summarize(ctx context.Context, c *model.Campaign, s *model.Session) (string, error)
}

// Manager owns every status transition of sessions and vault items.
type Manager struct {
	store      repo.Store
	logger     *zap.SugaredLogger
	summarizer Summarizer // optional; nil disables the AI-summary handoff
	locks      *keyedMutex
}

func NewManager(store repo.Store, logger *zap.SugaredLogger, summarizer Summarizer) *Manager {
	return &Manager{
		store:      store,
		logger:     logger,
		summarizer: summarizer,
		locks:      newKeyedMutex(),
	}
}

// CreateSession starts a new session for the campaign with the next
// monotonic number. The campaign's active-session pointer is seeded when it
// is still empty.
func (m *Manager) CreateSession(ctx context.Context, campaign *model.Campaign) (*model.Session, error) {
	unlock := m.locks.Lock("campaign:" + campaign.ID)
	defer unlock()

	var created *model.Session
	err := m.store.InTransaction(ctx, func(tx repo.Store) error {
		number, err := tx.Sessions().NextNumber(ctx, campaign.ID)
		if err != nil {
			return err
		}
		s := &model.Session{
			ID:          uuid.NewString(),
			CampaignID:  campaign.ID,
			Number:      number,
			Status:      model.SessionPlanned,
			Notes:       model.NoteMap{model.NoteKeyGeneral: ""},
			LinkedItems: model.StringList{},
			UsedItems:   model.StringList{},
		}
		if err := tx.Sessions().Create(ctx, s); err != nil {
			return err
		}
		if campaign.ActiveSession == "" {
			if err := tx.Campaigns().SetActiveSession(ctx, campaign.ID, s.ID); err != nil {
				return err
			}
		}
		created = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// LinkItem pulls a vault item into the session: the item id is appended to
// linked_items and the item goes active, which keeps it out of every other
// session. Linking an already-linked item is a no-op.
func (m *Manager) LinkItem(ctx context.Context, campaignID, sessionID, itemID string) (*model.Session, error) {
	unlock := m.locks.Lock("session:" + sessionID)
	defer unlock()
	unlockItem := m.locks.Lock("item:" + itemID)
	defer unlockItem()

	var out *model.Session
	err := m.store.InTransaction(ctx, func(tx repo.Store) error {
		session, err := tx.Sessions().GetByID(ctx, campaignID, sessionID)
		if err != nil {
			return err
		}
		if session.Completed() {
			return ErrSessionCompleted
		}
		item, err := tx.Items().GetByID(ctx, campaignID, itemID)
		if err != nil {
			return err
		}
		if item.Type.IsCharacter() {
			return ErrCharacterItem
		}
		if session.LinkedItems.Contains(itemID) {
			out = session // already linked, nothing to change
			return nil
		}
		switch item.Status {
		case model.StatusArchived:
			return ErrItemArchived
		case model.StatusActive:
			return ErrItemBusy
		}

		item.Status = model.StatusActive
		if err := tx.Items().Save(ctx, item); err != nil {
			return err
		}
		session.LinkedItems = append(session.LinkedItems, itemID)
		if err := tx.Sessions().Save(ctx, session); err != nil {
			return err
		}
		out = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UnlinkItem removes a vault item from the session and returns it to the
// reserve pool. The item's usage marker is cleared immediately: an unlinked
// item is no longer part of the session, so it cannot have "come up in
// play" there. Unlinking an item that is not linked is a no-op.
func (m *Manager) UnlinkItem(ctx context.Context, campaignID, sessionID, itemID string) (*model.Session, error) {
	unlock := m.locks.Lock("session:" + sessionID)
	defer unlock()
	unlockItem := m.locks.Lock("item:" + itemID)
	defer unlockItem()

	var out *model.Session
	err := m.store.InTransaction(ctx, func(tx repo.Store) error {
		session, err := tx.Sessions().GetByID(ctx, campaignID, sessionID)
		if err != nil {
			return err
		}
		if session.Completed() {
			return ErrSessionCompleted
		}
		if !session.LinkedItems.Contains(itemID) {
			out = session // not linked, nothing to change
			return nil
		}

		item, err := tx.Items().GetByID(ctx, campaignID, itemID)
		if err == nil && item.Status == model.StatusActive {
			item.Status = model.StatusReserve
			if err := tx.Items().Save(ctx, item); err != nil {
				return err
			}
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		session.LinkedItems = session.LinkedItems.Without(itemID)
		session.UsedItems = session.UsedItems.Without(itemID)
		if err := tx.Sessions().Save(ctx, session); err != nil {
			return err
		}
		out = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkUsed toggles the session's "came up in play" marker for a linked
// item. Pure in-session bookkeeping: the item record itself is untouched
// until conclusion, but the marker is persisted with the session so it
// survives a reload mid-session.
func (m *Manager) MarkUsed(ctx context.Context, campaignID, sessionID, itemID string) (*model.Session, error) {
	unlock := m.locks.Lock("session:" + sessionID)
	defer unlock()

	session, err := m.store.Sessions().GetByID(ctx, campaignID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed() {
		return nil, ErrSessionCompleted
	}
	if !session.LinkedItems.Contains(itemID) {
		return nil, ErrItemNotLinked
	}

	if session.UsedItems.Contains(itemID) {
		session.UsedItems = session.UsedItems.Without(itemID)
	} else {
		session.UsedItems = append(session.UsedItems, itemID)
	}
	if err := m.store.Sessions().Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ConcludeResult carries the finalized session and its successor.
type ConcludeResult struct {
	Concluded *model.Session
	Next      *model.Session
}

// Conclude finalizes the session and applies the consequences to every
// linked item in one transaction:
//
//   - used items stay in the historical linked_items record, their
//     usage_count goes up by one, and they return to reserve when reusable
//     or archive permanently when burnable;
//   - items that were linked but never marked used are dropped from the
//     record and returned to reserve untouched;
//   - character items are never mutated, whichever list they ended up in.
//
// The session is stamped completed with the conclusion timestamp (set once;
// concluding again is rejected before anything changes, so usage counts are
// never double-applied). A successor session is created with number+1 and
// its recap seeded from the summary, and the campaign's active-session
// pointer moves to it.
//
// When the caller supplies no summary and a Summarizer is configured, one
// is drafted from the session's notes; a drafting failure degrades to an
// empty summary and never blocks the conclusion.
func (m *Manager) Conclude(ctx context.Context, campaign *model.Campaign, sessionID, summary string) (*ConcludeResult, error) {
	unlock := m.locks.Lock("session:" + sessionID)
	defer unlock()

	session, err := m.store.Sessions().GetByID(ctx, campaign.ID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed() {
		return nil, ErrSessionCompleted
	}

	if summary == "" && m.summarizer != nil {
		drafted, err := m.summarizer.Summarize(ctx, campaign, session)
		if err != nil {
			m.logger.Warnw("summary draft failed, concluding without one",
				"session_id", sessionID, "error", err)
		} else {
			summary = drafted
		}
	}

	var result ConcludeResult
	err = m.store.InTransaction(ctx, func(tx repo.Store) error {
		// Re-read inside the transaction so a concurrent conclude that won
		// the race is detected instead of double-applied.
		session, err := tx.Sessions().GetByID(ctx, campaign.ID, sessionID)
		if err != nil {
			return err
		}
		if session.Completed() {
			return ErrSessionCompleted
		}

		final := make(model.StringList, 0, len(session.LinkedItems))
		for _, itemID := range session.LinkedItems {
			item, err := tx.Items().GetByID(ctx, campaign.ID, itemID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Deleted from the vault mid-session; drop it from the record.
				m.logger.Warnw("linked item no longer in vault, dropping",
					"session_id", sessionID, "item_id", itemID)
				continue
			}
			if err != nil {
				return fmt.Errorf("finalize item %s: %w", itemID, err)
			}

			used := session.UsedItems.Contains(itemID)
			if used {
				final = append(final, itemID)
			}

			if item.Type.IsCharacter() {
				continue // characters are exempt: status and count untouched
			}

			if used {
				item.UsageCount++
				if item.Type.Reusable() {
					item.Status = model.StatusReserve
				} else {
					item.Status = model.StatusArchived
				}
			} else {
				item.Status = model.StatusReserve
			}
			if err := tx.Items().Save(ctx, item); err != nil {
				return fmt.Errorf("finalize item %s: %w", itemID, err)
			}
		}

		now := time.Now().UTC()
		session.LinkedItems = final
		session.Status = model.SessionCompleted
		session.Summary = summary
		if session.Date == nil {
			session.Date = &now
		}
		if err := tx.Sessions().Save(ctx, session); err != nil {
			return err
		}

		next := &model.Session{
			ID:          uuid.NewString(),
			CampaignID:  campaign.ID,
			Number:      session.Number + 1,
			Status:      model.SessionPlanned,
			Recap:       summary,
			Notes:       model.NoteMap{model.NoteKeyGeneral: ""},
			LinkedItems: model.StringList{},
			UsedItems:   model.StringList{},
		}
		if err := tx.Sessions().Create(ctx, next); err != nil {
			return err
		}
		if err := tx.Campaigns().SetActiveSession(ctx, campaign.ID, next.ID); err != nil {
			return err
		}

		result = ConcludeResult{Concluded: session, Next: next}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Infow("session concluded",
		"campaign_id", campaign.ID,
		"session_id", result.Concluded.ID,
		"next_session_id", result.Next.ID,
		"items_kept", len(result.Concluded.LinkedItems),
	)
	return &result, nil
}
