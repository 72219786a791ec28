package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"LoreKeeper/internal/model"
	"LoreKeeper/internal/service"
)

// VaultHandler handles the per-campaign vault resource.
type VaultHandler struct {
	Vault     *service.VaultService
	Campaigns *service.CampaignService
	Logger    *zap.SugaredLogger
}

func NewVaultHandler(vault *service.VaultService, campaigns *service.CampaignService, logger *zap.SugaredLogger) *VaultHandler {
	return &VaultHandler{Vault: vault, Campaigns: campaigns, Logger: logger}
}

// ownCampaign checks the campaign exists and belongs to the caller.
func (h *VaultHandler) ownCampaign(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := requireUser(w, r)
	if !ok {
		return "", false
	}
	campaignID := chi.URLParam(r, "campaignID")
	if _, err := h.Campaigns.Get(r.Context(), userID, campaignID); err != nil {
		writeServiceError(w, err)
		return "", false
	}
	return campaignID, true
}

func (h *VaultHandler) List(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := h.ownCampaign(w, r)
	if !ok {
		return
	}
	items, err := h.Vault.List(r.Context(), campaignID, model.ItemType(r.URL.Query().Get("type")))
	if err != nil {
		h.Logger.Errorw("List vault: service error", "campaign_id", campaignID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *VaultHandler) Create(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := h.ownCampaign(w, r)
	if !ok {
		return
	}
	var in service.VaultItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !in.Type.Valid() {
		writeError(w, http.StatusBadRequest, "type is required")
		return
	}

	item, err := h.Vault.Create(r.Context(), campaignID, in)
	if err != nil {
		h.Logger.Errorw("Create vault item: service error", "campaign_id", campaignID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *VaultHandler) Get(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := h.ownCampaign(w, r)
	if !ok {
		return
	}
	item, err := h.Vault.Get(r.Context(), campaignID, chi.URLParam(r, "itemID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *VaultHandler) Update(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := h.ownCampaign(w, r)
	if !ok {
		return
	}
	var in service.VaultItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Vault.Update(r.Context(), campaignID, chi.URLParam(r, "itemID"), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *VaultHandler) Delete(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := h.ownCampaign(w, r)
	if !ok {
		return
	}
	if err := h.Vault.Delete(r.Context(), campaignID, chi.URLParam(r, "itemID")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "item deleted"})
}
