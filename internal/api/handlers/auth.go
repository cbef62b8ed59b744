package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playpool/shotsolver/internal/clients"
	"github.com/playpool/shotsolver/internal/config"
	"github.com/playpool/shotsolver/internal/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	maxFailedTokenAttempts = 5
	failedTokenWindow      = time.Minute
)

func failedTokenKey(clientID string) string {
	return fmt.Sprintf("token_fail:%s", clientID)
}

// IssueToken exchanges API client credentials for a bearer token
func IssueToken(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "client registry not configured"})
			return
		}

		var req struct {
			ClientID     string `json:"client_id"`
			ClientSecret string `json:"client_secret"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "client_id and client_secret required"})
			return
		}
		clientID := strings.TrimSpace(req.ClientID)
		if clientID == "" || req.ClientSecret == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "client_id and client_secret required"})
			return
		}

		ctx := c.Request.Context()
		// Lock a client out after repeated bad secrets
		failKey := failedTokenKey(clientID)
		if rdb != nil {
			if n, err := rdb.Get(ctx, failKey).Int(); err == nil && n >= maxFailedTokenAttempts {
				c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many failed attempts"})
				return
			}
		}

		client, err := clients.Authenticate(db, clientID, req.ClientSecret)
		if err != nil {
			if errors.Is(err, clients.ErrClientNotFound) || errors.Is(err, clients.ErrInvalidSecret) || errors.Is(err, clients.ErrClientInactive) {
				if rdb != nil {
					_, ferr := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
						pipe.Incr(ctx, failKey)
						pipe.Expire(ctx, failKey, failedTokenWindow)
						return nil
					})
					if ferr != nil {
						log.Warn().Err(ferr).Msg("[AUTH] failed to count bad attempt")
					}
				}
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if rdb != nil {
			rdb.Del(ctx, failKey)
		}

		token, exp, err := middleware.IssueToken(cfg.JWTSecret, client.ClientID, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
		if err != nil {
			log.Error().Err(err).Msg("[AUTH] Failed to sign token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		log.Info().Str("client_id", client.ClientID).Msg("[AUTH] token issued")
		c.JSON(http.StatusOK, gin.H{
			"token":      token,
			"expires_at": exp.Format(time.RFC3339),
			"client":     gin.H{"client_id": client.ClientID, "name": client.Name},
		})
	}
}
