package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"LoreKeeper/internal/ai"
	"LoreKeeper/internal/config"
	"LoreKeeper/internal/handlers"
	"LoreKeeper/internal/lifecycle"
	"LoreKeeper/internal/middleware"
	"LoreKeeper/internal/repo"
	"LoreKeeper/internal/service"
)

func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	middleware.SetLogger(sugar)
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	store := repo.NewStore(gormDB)

	userService := service.NewUserService(store.Users())
	campaignService := service.NewCampaignService(store.Campaigns())
	vaultService := service.NewVaultService(store.Items())

	// The AI collaborator is optional: without a key the chat endpoint
	// answers 503 and conclusions simply skip the summary draft.
	var assistant *ai.Assistant
	var summarizer lifecycle.Summarizer
	var chat handlers.ChatAssistant
	if cfg.GeminiAPIKey != "" {
		gen, err := ai.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			sugar.Fatalw("failed to initialize Gemini client", "error", err)
		}
		assistant = ai.NewAssistant(gen)
		summarizer = assistant
		chat = assistant
	} else {
		sugar.Infow("GEMINI_API_KEY not set, AI assistant disabled")
	}

	manager := lifecycle.NewManager(store, sugar, summarizer)

	h := handlers.NewHandler(userService, campaignService, vaultService, manager, chat, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
		"GeminiModel", cfg.GeminiModel,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
