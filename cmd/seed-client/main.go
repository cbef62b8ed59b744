package main

import (
	"os"

	"github.com/playpool/shotsolver/internal/clients"
	"github.com/playpool/shotsolver/internal/config"
	"github.com/playpool/shotsolver/internal/database"
	"github.com/playpool/shotsolver/internal/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.Environment, cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}
	db, err := database.Connect(cfg.DatabaseURL, 1)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	clientID := os.Getenv("CLIENT_ID")
	if clientID == "" {
		clientID = "camera-app"
		log.Info().Msgf("Using default client id: %s", clientID)
	}

	secret := os.Getenv("CLIENT_SECRET")
	if secret == "" {
		log.Fatal().Msgf("CLIENT_SECRET is required (at least %d characters)", clients.MinSecretLength)
	}

	name := os.Getenv("CLIENT_NAME")
	if name == "" {
		name = clientID
	}

	if err := clients.CreateClient(db, clientID, name, secret); err != nil {
		log.Fatal().Err(err).Msg("Failed to create api client")
	}

	log.Info().Msg("✓ API client created/updated successfully")
	log.Info().Msgf("  Client ID: %s", clientID)
	log.Info().Msgf("  Name: %s", name)
	log.Info().Msg("Exchange the credentials for a token at POST /api/v1/auth/token")
}
