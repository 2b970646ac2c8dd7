package auth

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetheria-gallery/aetheria/internal/adapter"
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

func newTestService(t *testing.T, st *mocks.MockStore) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := adapter.NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() {
		_ = redisClient.Close()
	})

	nonces := NewRedisNonceStore(redisClient, 5*time.Minute)
	tokens := NewJWTIssuer("test-secret", 24*time.Hour, adapter.NewClock())
	return NewService(nonces, tokens, st), mr
}

func TestService_LoginFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	key, wallet := newTestKey(t)

	st := mocks.NewMockStore(ctrl)
	st.EXPECT().
		UpsertUser(ctx, wallet.String()).
		Return(&schema.User{ID: 1, WalletAddress: wallet.String()}, nil)

	svc, _ := newTestService(t, st)

	challenge, err := svc.RequestChallenge(ctx, wallet)
	require.NoError(t, err)
	assert.NotEmpty(t, challenge.Nonce)
	assert.Contains(t, challenge.Message, challenge.Nonce)

	sig := personalSign(t, key, challenge.Message)

	session, err := svc.VerifyLogin(ctx, wallet, sig)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	require.NotNil(t, session.User)
	assert.Equal(t, wallet.String(), session.User.WalletAddress)
}

func TestService_VerifyWithoutChallenge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	key, wallet := newTestKey(t)

	svc, _ := newTestService(t, mocks.NewMockStore(ctrl))

	sig := personalSign(t, key, NonceMessage("made-up"))
	_, err := svc.VerifyLogin(ctx, wallet, sig)
	require.ErrorIs(t, err, domain.ErrNonceNotFound)
}

func TestService_VerifyWithBadSignature(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	_, wallet := newTestKey(t)
	otherKey, _ := newTestKey(t)

	svc, _ := newTestService(t, mocks.NewMockStore(ctrl))

	challenge, err := svc.RequestChallenge(ctx, wallet)
	require.NoError(t, err)

	sig := personalSign(t, otherKey, challenge.Message)
	_, err = svc.VerifyLogin(ctx, wallet, sig)
	require.ErrorIs(t, err, domain.ErrSignatureMismatch)

	// The challenge was consumed by the failed attempt
	sig = personalSign(t, otherKey, challenge.Message)
	_, err = svc.VerifyLogin(ctx, wallet, sig)
	require.ErrorIs(t, err, domain.ErrNonceNotFound)
}
