package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"LoreKeeper/internal/service"
)

// CampaignHandler handles the campaigns resource.
type CampaignHandler struct {
	Campaigns *service.CampaignService
	Logger    *zap.SugaredLogger
}

func NewCampaignHandler(campaigns *service.CampaignService, logger *zap.SugaredLogger) *CampaignHandler {
	return &CampaignHandler{Campaigns: campaigns, Logger: logger}
}

func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	campaigns, err := h.Campaigns.List(r.Context(), userID)
	if err != nil {
		h.Logger.Errorw("List campaigns: service error", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var in service.CampaignInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Title == nil || *in.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	campaign, err := h.Campaigns.Create(r.Context(), userID, in)
	if err != nil {
		h.Logger.Errorw("Create campaign: service error", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, campaign)
}

func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	campaign, err := h.Campaigns.Get(r.Context(), userID, chi.URLParam(r, "campaignID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var in service.CampaignInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	campaign, err := h.Campaigns.Update(r.Context(), userID, chi.URLParam(r, "campaignID"), in)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			h.Logger.Errorw("Update campaign: service error", "user_id", userID, "error", err)
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.Campaigns.Delete(r.Context(), userID, chi.URLParam(r, "campaignID")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "campaign deleted"})
}
