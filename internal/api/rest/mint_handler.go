package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aetheria-gallery/aetheria/internal/api/middleware"
	"github.com/aetheria-gallery/aetheria/internal/domain"
	"github.com/aetheria-gallery/aetheria/internal/minting"
)

// MintHandler serves the curator-facing mint operations
//
//go:generate mockgen -source=mint_handler.go -destination=../../mocks/mint_handler.go -package=mocks -mock_names=MintHandler=MockMintHandler
type MintHandler interface {
	// Mint mints an eligible artwork as an ERC-721 token
	// POST /mint
	Mint(c *gin.Context)

	// Eligibility reports whether an artwork can currently be minted
	// GET /eligibility/:artworkId
	Eligibility(c *gin.Context)

	// DeleteArtwork hard deletes an unminted artwork and its dependent rows
	// DELETE /artwork/:id
	DeleteArtwork(c *gin.Context)

	// HealthCheck returns the health status of the service
	// GET /health
	HealthCheck(c *gin.Context)
}

type mintHandler struct {
	service *minting.Service
}

// NewMintHandler creates a new mint REST handler
func NewMintHandler(service *minting.Service) MintHandler {
	return &mintHandler{service: service}
}

// SetupMintRoutes configures the mint service routes
func SetupMintRoutes(router *gin.Engine, handler MintHandler, adminToken string) {
	router.GET("/health", handler.HealthCheck)

	admin := router.Group("/", middleware.AdminAuth(adminToken))
	{
		admin.POST("/mint", handler.Mint)
		admin.GET("/eligibility/:artworkId", handler.Eligibility)
		admin.DELETE("/artwork/:id", handler.DeleteArtwork)
	}
}

type mintRequest struct {
	ArtworkID int64 `json:"artworkId"`
}

func (h *mintHandler) Mint(c *gin.Context) {
	var req mintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if req.ArtworkID <= 0 {
		respondBadRequest(c, "Missing artworkId")
		return
	}

	result, err := h.service.Mint(c.Request.Context(), req.ArtworkID)
	if err != nil {
		var minted *minting.AlreadyMintedError
		switch {
		case errors.Is(err, domain.ErrArtworkNotFound):
			respondNotFound(c, "Artwork not found")
		case errors.As(err, &minted):
			c.JSON(http.StatusConflict, gin.H{
				"error":    "Artwork already minted",
				"token_id": minted.TokenID,
				"tx_hash":  minted.TxHash,
			})
		case errors.Is(err, domain.ErrMetadataMissing):
			respondBadRequest(c, "Artwork metadata not created")
		case errors.Is(err, domain.ErrNotEligible):
			respondForbidden(c, "Artwork has not reached the vote threshold")
		default:
			respondUpstreamError(c, err, "Failed to mint artwork")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"artwork_id": result.ArtworkID,
		"token_id":   result.TokenID,
		"tx_hash":    result.TxHash,
	})
}

func (h *mintHandler) Eligibility(c *gin.Context) {
	artworkID, ok := parseArtworkID(c.Param("artworkId"))
	if !ok {
		respondBadRequest(c, "Invalid artwork id")
		return
	}

	eligibility, err := h.service.CheckEligibility(c.Request.Context(), artworkID)
	if err != nil {
		if errors.Is(err, domain.ErrArtworkNotFound) {
			respondNotFound(c, "Artwork not found")
			return
		}
		respondInternalError(c, err, "Failed to check eligibility")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"artwork_id":     eligibility.ArtworkID,
		"vote_count":     eligibility.VoteCount,
		"vote_threshold": eligibility.VoteThreshold,
		"minted":         eligibility.Minted,
		"eligible":       eligibility.Eligible,
	})
}

func (h *mintHandler) DeleteArtwork(c *gin.Context) {
	artworkID, ok := parseArtworkID(c.Param("id"))
	if !ok {
		respondBadRequest(c, "Invalid artwork id")
		return
	}

	if err := h.service.Remove(c.Request.Context(), artworkID); err != nil {
		switch {
		case errors.Is(err, domain.ErrArtworkNotFound):
			respondNotFound(c, "Artwork not found")
		case errors.Is(err, domain.ErrAlreadyMinted):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Minted artworks cannot be deleted",
			})
		default:
			respondInternalError(c, err, "Failed to delete artwork")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"artwork_id": artworkID,
	})
}

func (h *mintHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "aetheria-mint",
	})
}
