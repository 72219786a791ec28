package lifecycle

import (
	"context"

	"LoreKeeper/internal/model"
	"LoreKeeper/internal/repo"
)

// Read-side passthroughs so callers go through one handle for everything
// session-shaped.

func (m *Manager) ListSessions(ctx context.Context, campaignID string) ([]model.Session, error) {
	return m.store.Sessions().ListByCampaign(ctx, campaignID)
}

func (m *Manager) GetSession(ctx context.Context, campaignID, sessionID string) (*model.Session, error) {
	return m.store.Sessions().GetByID(ctx, campaignID, sessionID)
}

// DeleteSession removes a session permanently. Items still linked to it go
// back to the reserve pool first, so nothing stays stuck in active. When the
// deleted session was the campaign's live one, the pointer is cleared.
func (m *Manager) DeleteSession(ctx context.Context, campaign *model.Campaign, sessionID string) error {
	unlock := m.locks.Lock("session:" + sessionID)
	defer unlock()

	return m.store.InTransaction(ctx, func(tx repo.Store) error {
		session, err := tx.Sessions().GetByID(ctx, campaign.ID, sessionID)
		if err != nil {
			return err
		}
		for _, itemID := range session.LinkedItems {
			item, err := tx.Items().GetByID(ctx, campaign.ID, itemID)
			if err != nil {
				continue // already gone from the vault
			}
			if item.Status == model.StatusActive {
				item.Status = model.StatusReserve
				if err := tx.Items().Save(ctx, item); err != nil {
					return err
				}
			}
		}
		if err := tx.Sessions().Delete(ctx, campaign.ID, sessionID); err != nil {
			return err
		}
		if campaign.ActiveSession == sessionID {
			return tx.Campaigns().SetActiveSession(ctx, campaign.ID, "")
		}
		return nil
	})
}
