package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"retailbrain/config"
	"retailbrain/copilot"
	"retailbrain/database"
	"retailbrain/gemini"
	"retailbrain/handlers"
	"retailbrain/logger"
	"retailbrain/middleware"
	"retailbrain/models"
	"retailbrain/routes"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Text generation is optional; without a key every copilot answer is the fallback.
	var generator copilot.Generator
	if cfg.GeminiAPIKey != "" {
		g, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Error().Err(err).Msg("Gemini unavailable, copilot will use fallback answers")
		} else {
			defer g.Close()
			generator = g
		}
	} else {
		log.Warn().Msg("GEMINI_API_KEY is not set, copilot will use fallback answers")
	}

	store := database.NewStore(log)
	budget := copilot.Budget{
		ByteBudget: cfg.ContextByteBudget,
		RowFloor:   cfg.ContextRowFloor,
		RowCeiling: cfg.ContextRowCeiling,
	}
	cp := copilot.New(generator, budget, cfg.GenerationTimeout, log)
	h := handlers.New(store, cp, cfg.MaxUploadBytes, log)

	app := fiber.New(fiber.Config{
		BodyLimit:             cfg.MaxUploadBytes,
		DisableStartupMessage: true,
		JSONEncoder:           models.EncodeJSON,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(middleware.RequestLogger(log))

	routes.SetupRoutes(app, h, store)

	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("Starting RetailBrain API")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
