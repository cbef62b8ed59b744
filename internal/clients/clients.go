package clients

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/playpool/shotsolver/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrClientNotFound = errors.New("api client not found")
	ErrInvalidSecret  = errors.New("invalid client secret")
	ErrClientInactive = errors.New("api client is inactive")
)

// MinSecretLength is the shortest secret CreateClient accepts.
const MinSecretLength = 16

// GetClient retrieves an API client by id
func GetClient(db *sqlx.DB, clientID string) (*models.APIClient, error) {
	var c models.APIClient
	err := db.Get(&c, `SELECT client_id, name, secret_hash, is_active, created_at, updated_at FROM api_clients WHERE client_id=$1`, clientID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// HashSecret bcrypt-hashes a plain client secret.
func HashSecret(plain string, cost int) (string, error) {
	if len(plain) < MinSecretLength {
		return "", fmt.Errorf("secret must be at least %d characters", MinSecretLength)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hashed), nil
}

// VerifySecret checks if the provided secret matches the stored hash
func VerifySecret(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// CreateClient creates or rotates an API client (used for seeding)
func CreateClient(db *sqlx.DB, clientID, name, plainSecret string) error {
	hashed, err := HashSecret(plainSecret, bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO api_clients (client_id, name, secret_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, TRUE, NOW(), NOW())
		ON CONFLICT (client_id) DO UPDATE SET
			name = EXCLUDED.name,
			secret_hash = EXCLUDED.secret_hash,
			is_active = TRUE,
			updated_at = NOW()
	`, clientID, name, hashed)

	return err
}

// Authenticate validates a client id + secret combination
func Authenticate(db *sqlx.DB, clientID, secret string) (*models.APIClient, error) {
	c, err := GetClient(db, clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().Msgf("[AUTH] No api client found for id: %s", clientID)
			return nil, ErrClientNotFound
		}
		log.Error().Err(err).Msg("[AUTH] Database error")
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !c.IsActive {
		return nil, ErrClientInactive
	}
	if !VerifySecret(c.SecretHash, secret) {
		log.Warn().Msgf("[AUTH] Secret verification failed for client: %s", clientID)
		return nil, ErrInvalidSecret
	}

	return c, nil
}
