package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/aetheria-gallery/aetheria/internal/api/shared/errors"
	"github.com/aetheria-gallery/aetheria/internal/auth"
	"github.com/aetheria-gallery/aetheria/internal/domain"
	"github.com/aetheria-gallery/aetheria/internal/logger"
)

const (
	// AUTH_WALLET_KEY is the gin context key holding the authenticated wallet
	AUTH_WALLET_KEY = "auth_wallet"
)

// bearerToken extracts the credentials from a Bearer Authorization header
func bearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("invalid Authorization header format")
	}

	return parts[1], nil
}

// SessionAuth returns a gin middleware that validates a wallet session token
// and stores the wallet in the request context
func SessionAuth(tokens auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		credentials, err := bearerToken(c.GetHeader("Authorization"))
		if err == nil {
			var wallet domain.Wallet
			wallet, err = tokens.ParseToken(credentials)
			if err == nil {
				c.Set(AUTH_WALLET_KEY, wallet)
				logger.Debug("session authentication successful",
					zap.String("path", c.Request.URL.Path),
					zap.String("wallet", wallet.String()),
				)
				c.Next()
				return
			}
		}

		logger.Warn("authentication failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
		)
		apiErr := apierrors.NewUnauthorizedError("Authentication failed", err.Error())
		c.AbortWithStatusJSON(http.StatusUnauthorized, apiErr)
	}
}

// AdminAuth returns a gin middleware that requires a static bearer token
func AdminAuth(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		credentials, err := bearerToken(c.GetHeader("Authorization"))
		if err == nil {
			if adminToken == "" {
				err = errors.New("admin token not configured")
			} else if subtle.ConstantTimeCompare([]byte(credentials), []byte(adminToken)) != 1 {
				err = errors.New("invalid admin token")
			}
		}

		if err != nil {
			logger.Warn("admin authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			apiErr := apierrors.NewUnauthorizedError("Authentication failed", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiErr)
			return
		}

		c.Next()
	}
}

// WalletFromContext returns the wallet stored by SessionAuth
func WalletFromContext(c *gin.Context) (domain.Wallet, bool) {
	value, exists := c.Get(AUTH_WALLET_KEY)
	if !exists {
		return "", false
	}
	wallet, ok := value.(domain.Wallet)
	return wallet, ok
}
