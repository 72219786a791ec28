package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"LoreKeeper/internal/ai"
	"LoreKeeper/internal/lifecycle"
	"LoreKeeper/internal/service"
)

// ChatAssistant is what the chat endpoint needs from the AI collaborator.
type ChatAssistant interface {
	Ask(ctx context.Context, mode, query string, pc ai.PromptContext) (string, error)
}

// ChatHandler handles the per-campaign AI chat endpoint.
type ChatHandler struct {
	Assistant ChatAssistant // nil when no API key is configured
	Campaigns *service.CampaignService
	Vault     *service.VaultService
	Manager   *lifecycle.Manager
	Logger    *zap.SugaredLogger
}

func NewChatHandler(assistant ChatAssistant, campaigns *service.CampaignService, vault *service.VaultService, manager *lifecycle.Manager, logger *zap.SugaredLogger) *ChatHandler {
	return &ChatHandler{Assistant: assistant, Campaigns: campaigns, Vault: vault, Manager: manager, Logger: logger}
}

type askRequest struct {
	Query     string `json:"query"`
	Mode      string `json:"mode"`
	SessionID string `json:"session_id"`
}

type askResponse struct {
	Response string `json:"response"`
}

func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if h.Assistant == nil {
		writeError(w, http.StatusServiceUnavailable, "AI assistant is not configured")
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if req.Mode == "" {
		req.Mode = ai.ModeVault
	}

	campaign, err := h.Campaigns.Get(r.Context(), userID, chi.URLParam(r, "campaignID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pc := ai.PromptContext{Campaign: campaign}
	pc.Items, err = h.Vault.List(r.Context(), campaign.ID, "")
	if err != nil {
		h.Logger.Errorw("Ask: vault load error", "campaign_id", campaign.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if req.Mode == ai.ModeSession && req.SessionID != "" {
		pc.Session, err = h.Manager.GetSession(r.Context(), campaign.ID, req.SessionID)
		if err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
	}

	response, err := h.Assistant.Ask(r.Context(), req.Mode, req.Query, pc)
	if err != nil {
		h.Logger.Errorw("Ask: generation error", "campaign_id", campaign.ID, "error", err)
		writeError(w, http.StatusBadGateway, "assistant is unavailable")
		return
	}
	writeJSON(w, http.StatusOK, askResponse{Response: response})
}
