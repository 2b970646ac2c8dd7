package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aetheria-gallery/aetheria/internal/api/middleware"
	"github.com/aetheria-gallery/aetheria/internal/api/shared/dto"
	"github.com/aetheria-gallery/aetheria/internal/auth"
	"github.com/aetheria-gallery/aetheria/internal/domain"
	"github.com/aetheria-gallery/aetheria/internal/voting"
)

// VotingHandler serves community voting and gallery queries
//
//go:generate mockgen -source=voting_handler.go -destination=../../mocks/voting_handler.go -package=mocks -mock_names=VotingHandler=MockVotingHandler
type VotingHandler interface {
	// Vote toggles the caller's vote on an artwork
	// POST /vote
	Vote(c *gin.Context)

	// Featured lists the top artworks by vote count
	// GET /featured?n=
	Featured(c *gin.Context)

	// HasVoted reports whether a wallet has a live vote on an artwork
	// GET /has-voted?artwork=&wallet=
	HasVoted(c *gin.Context)

	// VoteCount returns the vote count for one artwork
	// GET /votes/:artworkId
	VoteCount(c *gin.Context)

	// GetArtwork fetches one artwork
	// GET /artwork/:id
	GetArtwork(c *gin.Context)

	// HealthCheck returns the health status of the service
	// GET /health
	HealthCheck(c *gin.Context)
}

type votingHandler struct {
	service *voting.Service
}

// NewVotingHandler creates a new voting REST handler
func NewVotingHandler(service *voting.Service) VotingHandler {
	return &votingHandler{service: service}
}

// SetupVotingRoutes configures the voting service routes
func SetupVotingRoutes(router *gin.Engine, handler VotingHandler, tokens auth.TokenIssuer) {
	router.GET("/health", handler.HealthCheck)
	router.POST("/vote", middleware.SessionAuth(tokens), handler.Vote)
	router.GET("/featured", handler.Featured)
	router.GET("/has-voted", handler.HasVoted)
	router.GET("/votes/:artworkId", handler.VoteCount)
	router.GET("/artwork/:id", handler.GetArtwork)
}

// parseArtworkID parses a positive integer artwork id from a raw string
func parseArtworkID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type voteRequest struct {
	ArtworkID   int64  `json:"artworkId"`
	VoterWallet string `json:"voterWallet"`
}

func (h *votingHandler) Vote(c *gin.Context) {
	sessionWallet, ok := middleware.WalletFromContext(c)
	if !ok {
		respondUnauthorized(c, "Authentication required")
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if req.ArtworkID <= 0 || req.VoterWallet == "" {
		respondBadRequest(c, "Missing artworkId or voterWallet")
		return
	}

	voter := domain.NewWallet(req.VoterWallet)
	if !voter.Valid() {
		respondBadRequest(c, "Invalid wallet address")
		return
	}
	if !voter.Equal(sessionWallet) {
		respondForbidden(c, "Voter wallet does not match the authenticated wallet")
		return
	}

	result, err := h.service.Toggle(c.Request.Context(), req.ArtworkID, voter)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrArtworkNotFound):
			respondNotFound(c, "Artwork not found")
		case errors.Is(err, domain.ErrInsufficientBalance):
			respondForbidden(c, "Insufficient balance to vote")
		case errors.Is(err, domain.ErrValidation):
			respondValidationError(c, err.Error())
		default:
			respondInternalError(c, err, "Failed to record vote")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"action":     result.Action,
		"vote_count": result.NewCount,
	})
}

func (h *votingHandler) Featured(c *gin.Context) {
	n := 0
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondBadRequest(c, "Invalid n parameter")
			return
		}
		n = parsed
	}

	artworks, err := h.service.Featured(c.Request.Context(), n)
	if err != nil {
		respondInternalError(c, err, "Failed to fetch featured artworks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(artworks),
		"artworks": dto.FromArtworks(artworks),
	})
}

func (h *votingHandler) HasVoted(c *gin.Context) {
	artworkID, ok := parseArtworkID(c.Query("artwork"))
	if !ok {
		respondBadRequest(c, "Invalid artwork parameter")
		return
	}

	wallet := domain.NewWallet(c.Query("wallet"))
	if !wallet.Valid() {
		respondBadRequest(c, "Invalid wallet address")
		return
	}

	_, hasVoted, err := h.service.Status(c.Request.Context(), artworkID, wallet)
	if err != nil {
		if errors.Is(err, domain.ErrArtworkNotFound) {
			respondNotFound(c, "Artwork not found")
			return
		}
		respondInternalError(c, err, "Failed to check vote")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"artwork_id": artworkID,
		"wallet":     wallet.String(),
		"has_voted":  hasVoted,
	})
}

func (h *votingHandler) VoteCount(c *gin.Context) {
	artworkID, ok := parseArtworkID(c.Param("artworkId"))
	if !ok {
		respondBadRequest(c, "Invalid artwork id")
		return
	}

	count, _, err := h.service.Status(c.Request.Context(), artworkID, "")
	if err != nil {
		if errors.Is(err, domain.ErrArtworkNotFound) {
			respondNotFound(c, "Artwork not found")
			return
		}
		respondInternalError(c, err, "Failed to fetch vote count")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"artwork_id": artworkID,
		"vote_count": count,
	})
}

func (h *votingHandler) GetArtwork(c *gin.Context) {
	artworkID, ok := parseArtworkID(c.Param("id"))
	if !ok {
		respondBadRequest(c, "Invalid artwork id")
		return
	}

	artwork, err := h.service.GetArtwork(c.Request.Context(), artworkID)
	if err != nil {
		respondInternalError(c, err, "Failed to fetch artwork")
		return
	}
	if artwork == nil {
		respondNotFound(c, "Artwork not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"artwork": dto.FromArtwork(artwork),
	})
}

func (h *votingHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "aetheria-voting",
	})
}
