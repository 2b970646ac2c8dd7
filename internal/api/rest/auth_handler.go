package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aetheria-gallery/aetheria/internal/auth"
	"github.com/aetheria-gallery/aetheria/internal/domain"
)

// AuthHandler serves the wallet login flow
//
//go:generate mockgen -source=auth_handler.go -destination=../../mocks/auth_handler.go -package=mocks -mock_names=AuthHandler=MockAuthHandler
type AuthHandler interface {
	// GetNonce issues a signing challenge for a wallet
	// GET /nonce?wallet=0x...
	GetNonce(c *gin.Context)

	// Verify checks a personal-sign signature and opens a session
	// POST /verify
	Verify(c *gin.Context)

	// HealthCheck returns the health status of the service
	// GET /health
	HealthCheck(c *gin.Context)
}

type authHandler struct {
	service *auth.Service
}

// NewAuthHandler creates a new auth REST handler
func NewAuthHandler(service *auth.Service) AuthHandler {
	return &authHandler{service: service}
}

// SetupAuthRoutes configures the auth service routes
func SetupAuthRoutes(router *gin.Engine, handler AuthHandler) {
	router.GET("/health", handler.HealthCheck)
	router.GET("/nonce", handler.GetNonce)
	router.POST("/verify", handler.Verify)
}

func (h *authHandler) GetNonce(c *gin.Context) {
	wallet := domain.NewWallet(c.Query("wallet"))
	if !wallet.Valid() {
		respondBadRequest(c, "Invalid wallet address")
		return
	}

	challenge, err := h.service.RequestChallenge(c.Request.Context(), wallet)
	if err != nil {
		respondInternalError(c, err, "Failed to issue nonce")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"nonce":   challenge.Nonce,
		"message": challenge.Message,
	})
}

type verifyRequest struct {
	Wallet    string `json:"wallet"`
	Signature string `json:"signature"`
}

func (h *authHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if req.Wallet == "" || req.Signature == "" {
		respondBadRequest(c, "Missing wallet or signature")
		return
	}

	wallet := domain.NewWallet(req.Wallet)
	if !wallet.Valid() {
		respondBadRequest(c, "Invalid wallet address")
		return
	}

	session, err := h.service.VerifyLogin(c.Request.Context(), wallet, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNonceNotFound):
			respondBadRequest(c, "Nonce not found or expired")
		case errors.Is(err, domain.ErrSignatureMismatch):
			respondUnauthorized(c, "Signature verification failed")
		default:
			respondInternalError(c, err, "Failed to verify signature")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   session.Token,
		"user": gin.H{
			"id":             session.User.ID,
			"wallet_address": session.User.WalletAddress,
			"username":       session.User.Username,
			"joined_at":      session.User.JoinedAt,
		},
	})
}

func (h *authHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "aetheria-auth",
	})
}
