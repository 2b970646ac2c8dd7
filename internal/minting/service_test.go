package minting

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetheria-gallery/aetheria/internal/domain"
	"github.com/aetheria-gallery/aetheria/internal/logger"
	"github.com/aetheria-gallery/aetheria/internal/mocks"
	"github.com/aetheria-gallery/aetheria/internal/store/schema"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const (
	testCreator = "0x8626f6940e2eb28930efb4cef49b2d1f2c9c1199"
	testTxHash  = "0x3b198bfd5d2907285af009e9ae84a0ecd63677110d89d7e030251acb87f6487e"
)

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

func eligibleArtwork() *schema.Artwork {
	return &schema.Artwork{
		ID:            7,
		Title:         "Neon Reverie",
		CreatorWallet: testCreator,
		MetadataURI:   strPtr("ipfs://QmTestMetadata"),
		VoteCount:     12,
	}
}

func TestService_Mint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	t.Run("mints an eligible artwork", func(t *testing.T) {
		st := mocks.NewMockStore(ctrl)
		contract := mocks.NewMockContractClient(ctrl)
		receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful}

		st.EXPECT().GetArtworkByID(ctx, int64(7)).Return(eligibleArtwork(), nil)
		contract.EXPECT().
			MintArtwork(ctx, testCreator, "ipfs://QmTestMetadata").
			Return(testTxHash, nil)
		contract.EXPECT().
			WaitForReceipt(ctx, testTxHash, 30*time.Second).
			Return(receipt, nil)
		contract.EXPECT().ParseMintedTokenID(receipt).Return(int64(42), nil)
		st.EXPECT().MarkMinted(ctx, int64(7), int64(42), testTxHash).Return(nil)

		svc := NewService(st, contract, 10, 30*time.Second)
		result, err := svc.Mint(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), result.ArtworkID)
		assert.Equal(t, int64(42), result.TokenID)
		assert.Equal(t, testTxHash, result.TxHash)
	})

	t.Run("missing artwork", func(t *testing.T) {
		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetArtworkByID(ctx, int64(99)).Return(nil, nil)

		svc := NewService(st, mocks.NewMockContractClient(ctrl), 10, 0)
		_, err := svc.Mint(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrArtworkNotFound)
	})

	t.Run("already minted carries existing token", func(t *testing.T) {
		artwork := eligibleArtwork()
		artwork.Minted = true
		artwork.TokenID = int64Ptr(5)
		artwork.TxHash = strPtr(testTxHash)

		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetArtworkByID(ctx, int64(7)).Return(artwork, nil)

		svc := NewService(st, mocks.NewMockContractClient(ctrl), 10, 0)
		_, err := svc.Mint(ctx, 7)
		assert.ErrorIs(t, err, domain.ErrAlreadyMinted)

		var minted *AlreadyMintedError
		require.ErrorAs(t, err, &minted)
		assert.Equal(t, int64(5), minted.TokenID)
		assert.Equal(t, testTxHash, minted.TxHash)
	})

	t.Run("metadata must exist first", func(t *testing.T) {
		artwork := eligibleArtwork()
		artwork.MetadataURI = nil

		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetArtworkByID(ctx, int64(7)).Return(artwork, nil)

		svc := NewService(st, mocks.NewMockContractClient(ctrl), 10, 0)
		_, err := svc.Mint(ctx, 7)
		assert.ErrorIs(t, err, domain.ErrMetadataMissing)
	})

	t.Run("below vote threshold", func(t *testing.T) {
		artwork := eligibleArtwork()
		artwork.VoteCount = 9

		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetArtworkByID(ctx, int64(7)).Return(artwork, nil)

		svc := NewService(st, mocks.NewMockContractClient(ctrl), 10, 0)
		_, err := svc.Mint(ctx, 7)
		assert.ErrorIs(t, err, domain.ErrNotEligible)
	})

	t.Run("transaction failure leaves artwork unminted", func(t *testing.T) {
		st := mocks.NewMockStore(ctrl)
		contract := mocks.NewMockContractClient(ctrl)

		st.EXPECT().GetArtworkByID(ctx, int64(7)).Return(eligibleArtwork(), nil)
		contract.EXPECT().
			MintArtwork(ctx, testCreator, "ipfs://QmTestMetadata").
			Return("", errors.New("rpc unavailable"))

		svc := NewService(st, contract, 10, 0)
		_, err := svc.Mint(ctx, 7)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send mint transaction")
	})

	t.Run("minted event missing from receipt", func(t *testing.T) {
		st := mocks.NewMockStore(ctrl)
		contract := mocks.NewMockContractClient(ctrl)
		receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful}

		st.EXPECT().GetArtworkByID(ctx, int64(7)).Return(eligibleArtwork(), nil)
		contract.EXPECT().
			MintArtwork(ctx, testCreator, "ipfs://QmTestMetadata").
			Return(testTxHash, nil)
		contract.EXPECT().
			WaitForReceipt(ctx, testTxHash, DefaultReceiptTimeout).
			Return(receipt, nil)
		contract.EXPECT().ParseMintedTokenID(receipt).Return(int64(0), domain.ErrMintEventNotFound)

		svc := NewService(st, contract, 10, 0)
		_, err := svc.Mint(ctx, 7)
		assert.ErrorIs(t, err, domain.ErrMintEventNotFound)
	})
}

func TestService_CheckEligibility(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	t.Run("eligible", func(t *testing.T) {
		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetArtworkByID(ctx, int64(7)).Return(eligibleArtwork(), nil)

		svc := NewService(st, mocks.NewMockContractClient(ctrl), 10, 0)
		eligibility, err := svc.CheckEligibility(ctx, 7)
		require.NoError(t, err)
		assert.True(t, eligibility.Eligible)
		assert.Equal(t, int64(12), eligibility.VoteCount)
		assert.Equal(t, int64(10), eligibility.VoteThreshold)
	})

	t.Run("minted artwork is not eligible", func(t *testing.T) {
		artwork := eligibleArtwork()
		artwork.Minted = true

		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetArtworkByID(ctx, int64(7)).Return(artwork, nil)

		svc := NewService(st, mocks.NewMockContractClient(ctrl), 10, 0)
		eligibility, err := svc.CheckEligibility(ctx, 7)
		require.NoError(t, err)
		assert.False(t, eligibility.Eligible)
		assert.True(t, eligibility.Minted)
	})

	t.Run("missing artwork", func(t *testing.T) {
		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetArtworkByID(ctx, int64(99)).Return(nil, nil)

		svc := NewService(st, mocks.NewMockContractClient(ctrl), 10, 0)
		_, err := svc.CheckEligibility(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrArtworkNotFound)
	})
}

func TestService_Remove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	t.Run("removes an unminted artwork", func(t *testing.T) {
		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetArtworkByID(ctx, int64(7)).Return(eligibleArtwork(), nil)
		st.EXPECT().DeleteArtwork(ctx, int64(7)).Return(nil)

		svc := NewService(st, mocks.NewMockContractClient(ctrl), 10, 0)
		require.NoError(t, svc.Remove(ctx, 7))
	})

	t.Run("minted artwork is refused", func(t *testing.T) {
		artwork := eligibleArtwork()
		artwork.Minted = true

		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetArtworkByID(ctx, int64(7)).Return(artwork, nil)

		svc := NewService(st, mocks.NewMockContractClient(ctrl), 10, 0)
		assert.ErrorIs(t, svc.Remove(ctx, 7), domain.ErrAlreadyMinted)
	})

	t.Run("missing artwork", func(t *testing.T) {
		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetArtworkByID(ctx, int64(99)).Return(nil, nil)

		svc := NewService(st, mocks.NewMockContractClient(ctrl), 10, 0)
		assert.ErrorIs(t, svc.Remove(ctx, 99), domain.ErrArtworkNotFound)
	})
}
