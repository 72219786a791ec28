package handlers

import (
	"LoreKeeper/internal/config"
	"LoreKeeper/internal/lifecycle"
	"LoreKeeper/internal/middleware"
	"LoreKeeper/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler wires every route of the API.
func NewHandler(
	userService *service.UserService,
	campaignService *service.CampaignService,
	vaultService *service.VaultService,
	manager *lifecycle.Manager,
	chat ChatAssistant,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	campaignHandler := NewCampaignHandler(campaignService, logger)
	vaultHandler := NewVaultHandler(vaultService, campaignService, logger)
	sessionHandler := NewSessionHandler(manager, campaignService, logger)
	chatHandler := NewChatHandler(chat, campaignService, vaultService, manager, logger)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/test", userHandler.Status)

	// Campaign routes
	r.Route("/api/campaigns", func(r chi.Router) {
		r.Get("/", campaignHandler.List)
		r.Post("/", campaignHandler.Create)

		r.Route("/{campaignID}", func(r chi.Router) {
			r.Get("/", campaignHandler.Get)
			r.Put("/", campaignHandler.Update)
			r.Delete("/", campaignHandler.Delete)

			r.Route("/vault", func(r chi.Router) {
				r.Get("/", vaultHandler.List)
				r.Post("/", vaultHandler.Create)
				r.Get("/{itemID}", vaultHandler.Get)
				r.Put("/{itemID}", vaultHandler.Update)
				r.Delete("/{itemID}", vaultHandler.Delete)
			})

			r.Route("/sessions", func(r chi.Router) {
				r.Get("/", sessionHandler.List)
				r.Post("/", sessionHandler.Create)
				r.Get("/{sessionID}", sessionHandler.Get)
				r.Put("/{sessionID}", sessionHandler.Update)
				r.Delete("/{sessionID}", sessionHandler.Delete)
				r.Post("/{sessionID}/link", sessionHandler.Link)
				r.Post("/{sessionID}/unlink", sessionHandler.Unlink)
				r.Post("/{sessionID}/use", sessionHandler.MarkUsed)
				r.Post("/{sessionID}/conclude", sessionHandler.Conclude)
			})

			r.Post("/chat", chatHandler.Ask)
		})
	})

	return &Handler{Router: r}
}
