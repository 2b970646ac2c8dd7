package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aetheria-gallery/aetheria/internal/domain"
	"github.com/aetheria-gallery/aetheria/internal/metadata"
)

// MetadataHandler serves token metadata documents
//
//go:generate mockgen -source=metadata_handler.go -destination=../../mocks/metadata_handler.go -package=mocks -mock_names=MetadataHandler=MockMetadataHandler
type MetadataHandler interface {
	// CreateMetadata builds and pins metadata for an artwork (idempotent)
	// POST /metadata
	CreateMetadata(c *gin.Context)

	// GetMetadata returns the metadata document and URI for an artwork
	// GET /metadata/:artworkId
	GetMetadata(c *gin.Context)

	// HealthCheck returns the health status of the service
	// GET /health
	HealthCheck(c *gin.Context)
}

type metadataHandler struct {
	service *metadata.Service
}

// NewMetadataHandler creates a new metadata REST handler
func NewMetadataHandler(service *metadata.Service) MetadataHandler {
	return &metadataHandler{service: service}
}

// SetupMetadataRoutes configures the metadata service routes
func SetupMetadataRoutes(router *gin.Engine, handler MetadataHandler) {
	router.GET("/health", handler.HealthCheck)
	router.POST("/metadata", handler.CreateMetadata)
	router.GET("/metadata/:artworkId", handler.GetMetadata)
}

type createMetadataRequest struct {
	ArtworkID int64 `json:"artworkId"`
}

func (h *metadataHandler) CreateMetadata(c *gin.Context) {
	var req createMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if req.ArtworkID <= 0 {
		respondBadRequest(c, "Missing artworkId")
		return
	}

	result, err := h.service.EnsureMetadata(c.Request.Context(), req.ArtworkID)
	if err != nil {
		if errors.Is(err, domain.ErrArtworkNotFound) {
			respondNotFound(c, "Artwork not found")
			return
		}
		respondInternalError(c, err, "Failed to create metadata")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metadata_uri": result.URI,
		"metadata":     result.Document,
	})
}

func (h *metadataHandler) GetMetadata(c *gin.Context) {
	artworkID, ok := parseArtworkID(c.Param("artworkId"))
	if !ok {
		respondBadRequest(c, "Invalid artwork id")
		return
	}

	result, err := h.service.GetMetadata(c.Request.Context(), artworkID)
	if err != nil {
		if errors.Is(err, domain.ErrArtworkNotFound) {
			respondNotFound(c, "Artwork not found")
			return
		}
		respondInternalError(c, err, "Failed to fetch metadata")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"artwork_id":   result.ArtworkID,
		"metadata_uri": result.URI,
		"metadata":     result.Document,
	})
}

func (h *metadataHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "aetheria-metadata",
	})
}
