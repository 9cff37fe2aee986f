package main

import (
	"context"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/mariamadly/loomkids-backend-go/config"
	"github.com/mariamadly/loomkids-backend-go/database"
	"github.com/mariamadly/loomkids-backend-go/handlers"
	"github.com/mariamadly/loomkids-backend-go/orders"
	"github.com/mariamadly/loomkids-backend-go/routes"
)

func main() {
	config.LoadEnv()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.TimeFieldFormat = time.RFC3339

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// The store handle is built here and injected everywhere; nothing below
	// this point owns a connection of its own.
	ctx := context.Background()
	store, err := database.Connect(ctx,
		config.GetEnv("MONGODB_URI", "mongodb://localhost:27017"),
		config.GetEnv("MONGODB_DB", "loomkids"),
		log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		if err := store.Close(ctx); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	if err := store.SeedAdmin(ctx, config.GetEnv("ADMIN_EMAIL", ""), config.GetEnv("ADMIN_PASSWORD", "")); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin account")
	}

	engine := orders.NewEngine(store, config.GetEnv("STORE_CURRENCY", "EGP"), log)
	readModel := orders.NewReadModel(store, log)
	h := handlers.New(store, engine, readModel, log)

	routes.SetupRoutes(e, h)

	port := config.GetEnv("PORT", "3000")
	log.Info().Str("port", port).Msg("server starting")
	if err := e.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
