package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aetheria-gallery/aetheria/internal/api/middleware"
	"github.com/aetheria-gallery/aetheria/internal/artwork"
	"github.com/aetheria-gallery/aetheria/internal/auth"
	"github.com/aetheria-gallery/aetheria/internal/domain"
)

// UploadHandler serves artwork submissions
//
//go:generate mockgen -source=upload_handler.go -destination=../../mocks/upload_handler.go -package=mocks -mock_names=UploadHandler=MockUploadHandler
type UploadHandler interface {
	// Upload accepts a multipart artwork submission
	// POST /upload
	Upload(c *gin.Context)

	// HealthCheck returns the health status of the service
	// GET /health
	HealthCheck(c *gin.Context)
}

type uploadHandler struct {
	uploader *artwork.Uploader
}

// NewUploadHandler creates a new upload REST handler
func NewUploadHandler(uploader *artwork.Uploader) UploadHandler {
	return &uploadHandler{uploader: uploader}
}

// SetupUploadRoutes configures the upload service routes
func SetupUploadRoutes(router *gin.Engine, handler UploadHandler, tokens auth.TokenIssuer) {
	router.GET("/health", handler.HealthCheck)
	router.POST("/upload", middleware.SessionAuth(tokens), handler.Upload)
}

func (h *uploadHandler) Upload(c *gin.Context) {
	sessionWallet, ok := middleware.WalletFromContext(c)
	if !ok {
		respondUnauthorized(c, "Authentication required")
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	creatorWallet := domain.NewWallet(c.PostForm("creator_wallet"))

	if title == "" || description == "" || creatorWallet == "" {
		respondBadRequest(c, "Missing required fields: title, description, creator_wallet")
		return
	}
	if !creatorWallet.Valid() {
		respondBadRequest(c, "Invalid wallet address")
		return
	}
	if !creatorWallet.Equal(sessionWallet) {
		respondForbidden(c, "Creator wallet does not match the authenticated wallet")
		return
	}

	var tags []string
	if rawTags := c.PostForm("tags"); rawTags != "" {
		if err := json.Unmarshal([]byte(rawTags), &tags); err != nil {
			respondBadRequest(c, "Invalid tags", "tags must be a JSON array of strings")
			return
		}
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "Missing file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondInternalError(c, err, "Failed to read file")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	image, err := io.ReadAll(file)
	if err != nil {
		respondInternalError(c, err, "Failed to read file")
		return
	}

	result, err := h.uploader.Upload(c.Request.Context(), artwork.UploadInput{
		Title:         title,
		Description:   description,
		Prompt:        c.PostForm("prompt"),
		AIModel:       c.PostForm("ai_model"),
		Tags:          tags,
		CreatorWallet: creatorWallet,
		Image:         image,
	})
	if err != nil {
		var duplicate *artwork.DuplicateError
		switch {
		case errors.As(err, &duplicate):
			c.JSON(http.StatusConflict, gin.H{
				"duplicate":         true,
				"existingArtworkId": duplicate.ExistingArtworkID,
			})
		case errors.Is(err, domain.ErrValidation):
			respondValidationError(c, err.Error())
		default:
			respondInternalError(c, err, "Failed to upload artwork")
		}
		return
	}

	response := gin.H{
		"artworkId":   result.Artwork.ID,
		"hash":        result.Artwork.ContentHash,
		"image_url":   result.Artwork.ImageURL,
		"title":       result.Artwork.Title,
		"description": result.Artwork.Description,
	}
	if result.PromptReused {
		response["promptDuplicate"] = true
		response["originalArtworkId"] = result.OriginalArtworkID
	}

	c.JSON(http.StatusOK, response)
}

func (h *uploadHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "aetheria-upload",
	})
}
