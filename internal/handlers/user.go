package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"LoreKeeper/internal/config"
	"LoreKeeper/internal/middleware"
	"LoreKeeper/internal/service"
)

// UserHandler handles registration, login and the auth status probe.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type credentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Login == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "login and password are required")
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrLoginTaken) {
			writeError(w, http.StatusConflict, "login already taken")
			return
		}
		h.Logger.Errorw("Register: service error", "login", req.Login, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Register: cookie error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": user.ID, "login": user.Login})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Login == "" {
		writeError(w, http.StatusBadRequest, "login and password are required")
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid login or password")
			return
		}
		h.Logger.Errorw("Login: service error", "login", req.Login, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Login: cookie error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": user.ID, "login": user.Login})
}

// Status reports whether the caller's auth cookie is valid.
func (h *UserHandler) Status(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "ok"})
}
