package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetheria-gallery/aetheria/internal/domain"
)

// RunStoreTests runs the full store test suite against an implementation.
// initDB is called before each test to get a clean store, cleanupDB after.
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(t *testing.T, store Store)
	}{
		{"CreateArtwork", testCreateArtwork},
		{"ToggleVote", testToggleVote},
		{"MarkMinted", testMarkMinted},
		{"SetMetadataURI", testSetMetadataURI},
		{"ListFeatured", testListFeatured},
		{"UpsertUser", testUpsertUser},
		{"AssociateTags", testAssociateTags},
		{"DeleteArtwork", testDeleteArtwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}

// =============================================================================
// Test Data Builders
// =============================================================================

func contentHashOf(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// buildTestArtwork creates a test artwork input with a unique content hash
func buildTestArtwork(seed string) CreateArtworkInput {
	prompt := "a cat painted in the style of Turner " + seed
	model := "stable-diffusion-xl"
	promptHash := contentHashOf(prompt)
	return CreateArtworkInput{
		Title:         "Test Artwork " + seed,
		Description:   "generated for tests",
		ImageURL:      fmt.Sprintf("https://images.example.com/%s.png", seed),
		CreatorWallet: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		ContentHash:   contentHashOf("image-bytes-" + seed),
		Prompt:        &prompt,
		AIModel:       &model,
		PromptHash:    &promptHash,
	}
}

// =============================================================================
// Test: CreateArtwork
// =============================================================================

func testCreateArtwork(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("successful create persists artwork and prompt fingerprint", func(t *testing.T) {
		input := buildTestArtwork("create-1")

		artwork, err := store.CreateArtwork(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, artwork)
		assert.NotZero(t, artwork.ID)
		assert.Equal(t, input.Title, artwork.Title)
		assert.Equal(t, input.ContentHash, artwork.ContentHash)
		assert.False(t, artwork.Minted)
		assert.Zero(t, artwork.VoteCount)

		// Verify lookup paths agree
		byID, err := store.GetArtworkByID(ctx, artwork.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, artwork.ID, byID.ID)

		byHash, err := store.GetArtworkByContentHash(ctx, input.ContentHash)
		require.NoError(t, err)
		require.NotNil(t, byHash)
		assert.Equal(t, artwork.ID, byHash.ID)

		// Verify prompt fingerprint was recorded
		ph, err := store.FindPromptHash(ctx, *input.PromptHash)
		require.NoError(t, err)
		require.NotNil(t, ph)
		assert.Equal(t, artwork.ID, ph.ArtworkID)
	})

	t.Run("same content hash is rejected as duplicate", func(t *testing.T) {
		input := buildTestArtwork("create-dup")

		first, err := store.CreateArtwork(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, first)

		input.Title = "Different title, same bytes"
		_, err = store.CreateArtwork(ctx, input)
		require.ErrorIs(t, err, domain.ErrDuplicateArtwork)

		// The original row is untouched
		existing, err := store.GetArtworkByContentHash(ctx, input.ContentHash)
		require.NoError(t, err)
		require.NotNil(t, existing)
		assert.Equal(t, first.ID, existing.ID)
	})

	t.Run("artwork without a prompt skips the fingerprint", func(t *testing.T) {
		input := buildTestArtwork("create-noprompt")
		input.Prompt = nil
		input.PromptHash = nil

		artwork, err := store.CreateArtwork(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, artwork)
		assert.Nil(t, artwork.Prompt)
	})

	t.Run("missing artwork returns nil without error", func(t *testing.T) {
		artwork, err := store.GetArtworkByID(ctx, 99999999)
		require.NoError(t, err)
		assert.Nil(t, artwork)

		artwork, err = store.GetArtworkByContentHash(ctx, contentHashOf("never uploaded"))
		require.NoError(t, err)
		assert.Nil(t, artwork)
	})
}

// =============================================================================
// Test: ToggleVote
// =============================================================================

func testToggleVote(t *testing.T, store Store) {
	ctx := context.Background()
	wallet := "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

	artwork, err := store.CreateArtwork(ctx, buildTestArtwork("vote-1"))
	require.NoError(t, err)

	t.Run("first toggle adds the vote", func(t *testing.T) {
		action, count, err := store.ToggleVote(ctx, artwork.ID, wallet)
		require.NoError(t, err)
		assert.Equal(t, domain.VoteActionAdded, action)
		assert.Equal(t, int64(1), count)

		voted, err := store.HasVoted(ctx, artwork.ID, wallet)
		require.NoError(t, err)
		assert.True(t, voted)
	})

	t.Run("second toggle removes the vote", func(t *testing.T) {
		action, count, err := store.ToggleVote(ctx, artwork.ID, wallet)
		require.NoError(t, err)
		assert.Equal(t, domain.VoteActionRemoved, action)
		assert.Equal(t, int64(0), count)

		voted, err := store.HasVoted(ctx, artwork.ID, wallet)
		require.NoError(t, err)
		assert.False(t, voted)
	})

	t.Run("votes from distinct wallets accumulate", func(t *testing.T) {
		wallets := []string{
			"0x1111111111111111111111111111111111111111",
			"0x2222222222222222222222222222222222222222",
			"0x3333333333333333333333333333333333333333",
		}
		for i, w := range wallets {
			action, count, err := store.ToggleVote(ctx, artwork.ID, w)
			require.NoError(t, err)
			assert.Equal(t, domain.VoteActionAdded, action)
			assert.Equal(t, int64(i+1), count)
		}

		count, err := store.GetVoteCount(ctx, artwork.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("toggle on a missing artwork fails", func(t *testing.T) {
		_, _, err := store.ToggleVote(ctx, 99999999, wallet)
		require.ErrorIs(t, err, domain.ErrArtworkNotFound)
	})

	t.Run("vote count on a missing artwork fails", func(t *testing.T) {
		_, err := store.GetVoteCount(ctx, 99999999)
		require.ErrorIs(t, err, domain.ErrArtworkNotFound)
	})
}

// =============================================================================
// Test: MarkMinted
// =============================================================================

func testMarkMinted(t *testing.T, store Store) {
	ctx := context.Background()

	artwork, err := store.CreateArtwork(ctx, buildTestArtwork("mint-1"))
	require.NoError(t, err)

	t.Run("successful mint records token id and tx hash", func(t *testing.T) {
		err := store.MarkMinted(ctx, artwork.ID, 42, "0xdeadbeef")
		require.NoError(t, err)

		minted, err := store.GetArtworkByID(ctx, artwork.ID)
		require.NoError(t, err)
		require.NotNil(t, minted)
		assert.True(t, minted.Minted)
		require.NotNil(t, minted.TokenID)
		assert.Equal(t, int64(42), *minted.TokenID)
		require.NotNil(t, minted.TxHash)
		assert.Equal(t, "0xdeadbeef", *minted.TxHash)
	})

	t.Run("second mint for the same artwork is rejected", func(t *testing.T) {
		err := store.MarkMinted(ctx, artwork.ID, 43, "0xfeedface")
		require.ErrorIs(t, err, domain.ErrAlreadyMinted)

		// Original mint record is untouched
		minted, err := store.GetArtworkByID(ctx, artwork.ID)
		require.NoError(t, err)
		require.NotNil(t, minted.TokenID)
		assert.Equal(t, int64(42), *minted.TokenID)
	})

	t.Run("mint on a missing artwork fails", func(t *testing.T) {
		err := store.MarkMinted(ctx, 99999999, 1, "0x0")
		require.ErrorIs(t, err, domain.ErrArtworkNotFound)
	})
}

// =============================================================================
// Test: SetMetadataURI
// =============================================================================

func testSetMetadataURI(t *testing.T, store Store) {
	ctx := context.Background()

	artwork, err := store.CreateArtwork(ctx, buildTestArtwork("meta-1"))
	require.NoError(t, err)

	t.Run("stores the URI", func(t *testing.T) {
		uri := "ipfs://bafytestmetadata"
		err := store.SetMetadataURI(ctx, artwork.ID, uri)
		require.NoError(t, err)

		updated, err := store.GetArtworkByID(ctx, artwork.ID)
		require.NoError(t, err)
		require.NotNil(t, updated.MetadataURI)
		assert.Equal(t, uri, *updated.MetadataURI)
	})

	t.Run("missing artwork fails", func(t *testing.T) {
		err := store.SetMetadataURI(ctx, 99999999, "ipfs://nowhere")
		require.ErrorIs(t, err, domain.ErrArtworkNotFound)
	})
}

// =============================================================================
// Test: ListFeatured
// =============================================================================

func testListFeatured(t *testing.T, store Store) {
	ctx := context.Background()

	// Three artworks with 3, 1 and 2 votes respectively
	counts := []int{3, 1, 2}
	ids := make([]int64, len(counts))
	for i, n := range counts {
		artwork, err := store.CreateArtwork(ctx, buildTestArtwork(fmt.Sprintf("featured-%d", i)))
		require.NoError(t, err)
		ids[i] = artwork.ID

		for v := 0; v < n; v++ {
			wallet := fmt.Sprintf("0x%040d", i*10+v)
			_, _, err := store.ToggleVote(ctx, artwork.ID, wallet)
			require.NoError(t, err)
		}
	}

	t.Run("orders by vote count descending", func(t *testing.T) {
		featured, err := store.ListFeatured(ctx, 10)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(featured), 3)
		assert.Equal(t, ids[0], featured[0].ID)
		assert.Equal(t, ids[2], featured[1].ID)
		assert.Equal(t, ids[1], featured[2].ID)
	})

	t.Run("respects the limit", func(t *testing.T) {
		featured, err := store.ListFeatured(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, featured, 2)
	})
}

// =============================================================================
// Test: UpsertUser
// =============================================================================

func testUpsertUser(t *testing.T, store Store) {
	ctx := context.Background()
	wallet := "0xcccccccccccccccccccccccccccccccccccccccc"

	first, err := store.UpsertUser(ctx, wallet)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.NotZero(t, first.ID)
	assert.Equal(t, wallet, first.WalletAddress)

	// Second upsert returns the same row
	second, err := store.UpsertUser(ctx, wallet)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
}

// =============================================================================
// Test: AssociateTags
// =============================================================================

func testAssociateTags(t *testing.T, store Store) {
	ctx := context.Background()

	artwork, err := store.CreateArtwork(ctx, buildTestArtwork("tags-1"))
	require.NoError(t, err)

	t.Run("case folds and deduplicates", func(t *testing.T) {
		err := store.AssociateTags(ctx, artwork.ID, []string{"Surreal", "surreal", " Landscape ", ""})
		require.NoError(t, err)

		tags, err := store.GetArtworkTags(ctx, artwork.ID)
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "landscape", tags[0].Name)
		assert.Equal(t, "surreal", tags[1].Name)
	})

	t.Run("relinking an existing tag is idempotent", func(t *testing.T) {
		err := store.AssociateTags(ctx, artwork.ID, []string{"surreal"})
		require.NoError(t, err)

		tags, err := store.GetArtworkTags(ctx, artwork.ID)
		require.NoError(t, err)
		assert.Len(t, tags, 2)
	})

	t.Run("tags are shared across artworks", func(t *testing.T) {
		other, err := store.CreateArtwork(ctx, buildTestArtwork("tags-2"))
		require.NoError(t, err)

		err = store.AssociateTags(ctx, other.ID, []string{"surreal"})
		require.NoError(t, err)

		tags, err := store.GetArtworkTags(ctx, other.ID)
		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, "surreal", tags[0].Name)
	})
}

// =============================================================================
// Test: DeleteArtwork
// =============================================================================

func testDeleteArtwork(t *testing.T, store Store) {
	ctx := context.Background()

	input := buildTestArtwork("delete-1")
	artwork, err := store.CreateArtwork(ctx, input)
	require.NoError(t, err)

	_, _, err = store.ToggleVote(ctx, artwork.ID, "0xdddddddddddddddddddddddddddddddddddddddd")
	require.NoError(t, err)
	err = store.AssociateTags(ctx, artwork.ID, []string{"doomed"})
	require.NoError(t, err)

	t.Run("delete removes the artwork and dependent rows", func(t *testing.T) {
		err := store.DeleteArtwork(ctx, artwork.ID)
		require.NoError(t, err)

		gone, err := store.GetArtworkByID(ctx, artwork.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		voted, err := store.HasVoted(ctx, artwork.ID, "0xdddddddddddddddddddddddddddddddddddddddd")
		require.NoError(t, err)
		assert.False(t, voted)

		ph, err := store.FindPromptHash(ctx, *input.PromptHash)
		require.NoError(t, err)
		assert.Nil(t, ph)
	})

	t.Run("deleting a missing artwork fails", func(t *testing.T) {
		err := store.DeleteArtwork(ctx, artwork.ID)
		require.ErrorIs(t, err, domain.ErrArtworkNotFound)
	})
}
