package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"LoreKeeper/internal/lifecycle"
	"LoreKeeper/internal/model"
	"LoreKeeper/internal/service"
)

// SessionHandler handles the per-campaign sessions resource, including the
// lifecycle operations (link, unlink, use, conclude).
type SessionHandler struct {
	Manager   *lifecycle.Manager
	Campaigns *service.CampaignService
	Logger    *zap.SugaredLogger
}

func NewSessionHandler(manager *lifecycle.Manager, campaigns *service.CampaignService, logger *zap.SugaredLogger) *SessionHandler {
	return &SessionHandler{Manager: manager, Campaigns: campaigns, Logger: logger}
}

func (h *SessionHandler) ownCampaign(w http.ResponseWriter, r *http.Request) (*model.Campaign, bool) {
	userID, ok := requireUser(w, r)
	if !ok {
		return nil, false
	}
	campaign, err := h.Campaigns.Get(r.Context(), userID, chi.URLParam(r, "campaignID"))
	if err != nil {
		writeServiceError(w, err)
		return nil, false
	}
	return campaign, true
}

func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.ownCampaign(w, r)
	if !ok {
		return
	}
	sessions, err := h.Manager.ListSessions(r.Context(), campaign.ID)
	if err != nil {
		h.Logger.Errorw("List sessions: service error", "campaign_id", campaign.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.ownCampaign(w, r)
	if !ok {
		return
	}
	session, err := h.Manager.CreateSession(r.Context(), campaign)
	if err != nil {
		h.Logger.Errorw("Create session: service error", "campaign_id", campaign.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.ownCampaign(w, r)
	if !ok {
		return
	}
	session, err := h.Manager.GetSession(r.Context(), campaign.ID, chi.URLParam(r, "sessionID"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.ownCampaign(w, r)
	if !ok {
		return
	}
	var patch lifecycle.SessionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.Manager.UpdateSession(r.Context(), campaign.ID, chi.URLParam(r, "sessionID"), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.ownCampaign(w, r)
	if !ok {
		return
	}
	if err := h.Manager.DeleteSession(r.Context(), campaign, chi.URLParam(r, "sessionID")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		h.Logger.Errorw("Delete session: service error", "campaign_id", campaign.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "session deleted"})
}

type itemRequest struct {
	ItemID string `json:"item_id"`
}

func (h *SessionHandler) itemOp(
	w http.ResponseWriter,
	r *http.Request,
	op func(campaignID, sessionID, itemID string) (*model.Session, error),
) {
	campaign, ok := h.ownCampaign(w, r)
	if !ok {
		return
	}
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemID == "" {
		writeError(w, http.StatusBadRequest, "item_id is required")
		return
	}

	session, err := op(campaign.ID, chi.URLParam(r, "sessionID"), req.ItemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *SessionHandler) Link(w http.ResponseWriter, r *http.Request) {
	h.itemOp(w, r, func(campaignID, sessionID, itemID string) (*model.Session, error) {
		return h.Manager.LinkItem(r.Context(), campaignID, sessionID, itemID)
	})
}

func (h *SessionHandler) Unlink(w http.ResponseWriter, r *http.Request) {
	h.itemOp(w, r, func(campaignID, sessionID, itemID string) (*model.Session, error) {
		return h.Manager.UnlinkItem(r.Context(), campaignID, sessionID, itemID)
	})
}

func (h *SessionHandler) MarkUsed(w http.ResponseWriter, r *http.Request) {
	h.itemOp(w, r, func(campaignID, sessionID, itemID string) (*model.Session, error) {
		return h.Manager.MarkUsed(r.Context(), campaignID, sessionID, itemID)
	})
}

type concludeRequest struct {
	Summary string `json:"summary"`
}

type concludeResponse struct {
	Session *model.Session `json:"session"`
	Next    *model.Session `json:"next"`
}

func (h *SessionHandler) Conclude(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.ownCampaign(w, r)
	if !ok {
		return
	}
	var req concludeRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	result, err := h.Manager.Conclude(r.Context(), campaign, chi.URLParam(r, "sessionID"), req.Summary)
	if err != nil {
		if !errors.Is(err, lifecycle.ErrSessionCompleted) && !errors.Is(err, gorm.ErrRecordNotFound) {
			h.Logger.Errorw("Conclude: service error", "campaign_id", campaign.ID, "error", err)
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, concludeResponse{Session: result.Concluded, Next: result.Next})
}
