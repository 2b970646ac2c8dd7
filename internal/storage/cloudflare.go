package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/cloudflare/cloudflare-go"
	"go.uber.org/zap"

	"github.com/aetheria-gallery/aetheria/internal/adapter"
	"github.com/aetheria-gallery/aetheria/internal/logger"
)

// ObjectStorage stores artwork images and returns their public URL
//
//go:generate mockgen -source=cloudflare.go -destination=../mocks/storage.go -package=mocks -mock_names=ObjectStorage=MockObjectStorage
type ObjectStorage interface {
	// UploadImage stores an image under the given name and returns its public URL
	UploadImage(ctx context.Context, name string, data []byte, metadata map[string]interface{}) (string, error)
}

type cloudflareImages struct {
	client          adapter.CloudflareClient
	rc              *cloudflare.ResourceContainer
	deliveryBaseURL string
}

// NewCloudflareImages creates an ObjectStorage backed by Cloudflare Images
func NewCloudflareImages(client adapter.CloudflareClient, accountID, deliveryBaseURL string) ObjectStorage {
	return &cloudflareImages{
		client:          client,
		rc:              cloudflare.AccountIdentifier(accountID),
		deliveryBaseURL: deliveryBaseURL,
	}
}

func (s *cloudflareImages) UploadImage(ctx context.Context, name string, data []byte, metadata map[string]interface{}) (string, error) {
	params := cloudflare.UploadImageParams{
		File:     io.NopCloser(bytes.NewReader(data)),
		Name:     name,
		Metadata: metadata,
	}

	image, err := s.client.UploadImage(ctx, s.rc, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	logger.InfoCtx(ctx, "uploaded image",
		zap.String("name", name),
		zap.String("imageID", image.ID),
	)

	// Prefer the variant URL Cloudflare hands back; fall back to the
	// configured delivery base for accounts without default variants.
	if len(image.Variants) > 0 {
		return image.Variants[0], nil
	}
	if s.deliveryBaseURL != "" {
		return fmt.Sprintf("%s/%s/public", s.deliveryBaseURL, image.ID), nil
	}
	return "", fmt.Errorf("upload succeeded but no variant URL for image %s", image.ID)
}
