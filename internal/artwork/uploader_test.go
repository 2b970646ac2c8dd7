package artwork

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetheria-gallery/aetheria/internal/domain"
	"github.com/aetheria-gallery/aetheria/internal/logger"
	"github.com/aetheria-gallery/aetheria/internal/mocks"
	"github.com/aetheria-gallery/aetheria/internal/store"
	"github.com/aetheria-gallery/aetheria/internal/store/schema"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// pngBytes is a minimal PNG header, enough for content sniffing
var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52}

const testWalletHex = "0x8626f6940e2eb28930efb4cef49b2d1f2c9c1199"

func validInput() UploadInput {
	return UploadInput{
		Title:         "Dreaming Machines",
		Description:   "an AI reverie",
		Prompt:        "a city made of light",
		AIModel:       "stable-diffusion-xl",
		Tags:          []string{"surreal"},
		CreatorWallet: domain.NewWallet(testWalletHex),
		Image:         pngBytes,
	}
}

func TestUploader_Upload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	st := mocks.NewMockStore(ctrl)
	blobs := mocks.NewMockObjectStorage(ctrl)
	uploader := NewUploader(st, blobs, 0)

	input := validInput()
	hash := ContentHash(input.Image)
	fp := PromptFingerprint(input.Prompt)

	st.EXPECT().GetArtworkByContentHash(ctx, hash).Return(nil, nil)
	st.EXPECT().FindPromptHash(ctx, fp).Return(nil, nil)
	blobs.EXPECT().
		UploadImage(ctx, gomock.Any(), input.Image, gomock.Any()).
		Return("https://imagedelivery.net/acct/img-1/public", nil)
	st.EXPECT().
		CreateArtwork(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, in store.CreateArtworkInput) (*schema.Artwork, error) {
			assert.Equal(t, "Dreaming Machines", in.Title)
			assert.Equal(t, hash, in.ContentHash)
			assert.Equal(t, testWalletHex, in.CreatorWallet)
			require.NotNil(t, in.PromptHash)
			assert.Equal(t, fp, *in.PromptHash)
			return &schema.Artwork{ID: 7, Title: in.Title, ContentHash: in.ContentHash}, nil
		})
	st.EXPECT().AssociateTags(ctx, int64(7), []string{"surreal"}).Return(nil)

	result, err := uploader.Upload(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.Artwork.ID)
	assert.False(t, result.PromptReused)
}

func TestUploader_DuplicateContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	st := mocks.NewMockStore(ctrl)
	blobs := mocks.NewMockObjectStorage(ctrl)
	uploader := NewUploader(st, blobs, 0)

	input := validInput()
	hash := ContentHash(input.Image)

	st.EXPECT().
		GetArtworkByContentHash(ctx, hash).
		Return(&schema.Artwork{ID: 3, ContentHash: hash}, nil)

	_, err := uploader.Upload(ctx, input)
	require.ErrorIs(t, err, domain.ErrDuplicateArtwork)

	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, int64(3), dup.ExistingArtworkID)
}

func TestUploader_DuplicateRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	st := mocks.NewMockStore(ctrl)
	blobs := mocks.NewMockObjectStorage(ctrl)
	uploader := NewUploader(st, blobs, 0)

	input := validInput()
	input.Prompt = ""
	hash := ContentHash(input.Image)

	// The pre-check misses, another upload wins the insert race
	st.EXPECT().GetArtworkByContentHash(ctx, hash).Return(nil, nil)
	blobs.EXPECT().UploadImage(ctx, gomock.Any(), input.Image, gomock.Any()).Return("https://img/x", nil)
	st.EXPECT().CreateArtwork(ctx, gomock.Any()).Return(nil, domain.ErrDuplicateArtwork)
	st.EXPECT().
		GetArtworkByContentHash(ctx, hash).
		Return(&schema.Artwork{ID: 9, ContentHash: hash}, nil)

	_, err := uploader.Upload(ctx, input)
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, int64(9), dup.ExistingArtworkID)
}

func TestUploader_PromptReuseFlagged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	st := mocks.NewMockStore(ctrl)
	blobs := mocks.NewMockObjectStorage(ctrl)
	uploader := NewUploader(st, blobs, 0)

	input := validInput()
	input.Tags = nil
	fp := PromptFingerprint(input.Prompt)

	st.EXPECT().GetArtworkByContentHash(ctx, gomock.Any()).Return(nil, nil)
	st.EXPECT().
		FindPromptHash(ctx, fp).
		Return(&schema.PromptHash{ID: 1, ArtworkID: 4, Hash: fp}, nil)
	blobs.EXPECT().UploadImage(ctx, gomock.Any(), input.Image, gomock.Any()).Return("https://img/y", nil)
	st.EXPECT().
		CreateArtwork(ctx, gomock.Any()).
		Return(&schema.Artwork{ID: 11}, nil)

	result, err := uploader.Upload(ctx, input)
	require.NoError(t, err)
	assert.True(t, result.PromptReused)
	assert.Equal(t, int64(4), result.OriginalArtworkID)
}

func TestUploader_TagFailureDoesNotFailUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	st := mocks.NewMockStore(ctrl)
	blobs := mocks.NewMockObjectStorage(ctrl)
	uploader := NewUploader(st, blobs, 0)

	input := validInput()
	input.Prompt = ""

	st.EXPECT().GetArtworkByContentHash(ctx, gomock.Any()).Return(nil, nil)
	blobs.EXPECT().UploadImage(ctx, gomock.Any(), input.Image, gomock.Any()).Return("https://img/z", nil)
	st.EXPECT().CreateArtwork(ctx, gomock.Any()).Return(&schema.Artwork{ID: 5}, nil)
	st.EXPECT().AssociateTags(ctx, int64(5), input.Tags).Return(errors.New("tags table on fire"))

	result, err := uploader.Upload(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Artwork.ID)
}

func TestUploader_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	uploader := NewUploader(mocks.NewMockStore(ctrl), mocks.NewMockObjectStorage(ctrl), 32)

	t.Run("missing title", func(t *testing.T) {
		input := validInput()
		input.Title = "   "
		_, err := uploader.Upload(ctx, input)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing image", func(t *testing.T) {
		input := validInput()
		input.Image = nil
		_, err := uploader.Upload(ctx, input)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("oversized image", func(t *testing.T) {
		input := validInput()
		input.Image = make([]byte, 64)
		copy(input.Image, pngBytes)
		_, err := uploader.Upload(ctx, input)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("not an image", func(t *testing.T) {
		input := validInput()
		input.Image = []byte("just some text, definitely")
		_, err := uploader.Upload(ctx, input)
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}
