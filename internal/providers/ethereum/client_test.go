package ethereum

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetheria-gallery/aetheria/internal/domain"
	"github.com/aetheria-gallery/aetheria/internal/logger"
	"github.com/aetheria-gallery/aetheria/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const (
	testContractAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	testCreatorAddress  = "0x8626f6940E2eb28930eFb4CeF49B2d1F2C9C1199"
)

func newTestClient(t *testing.T, eth *mocks.MockEthClient) ContractClient {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	client, err := NewContractClient(eth, 31337, testContractAddress, common.Bytes2Hex(crypto.FromECDSA(key)))
	require.NoError(t, err)
	return client
}

func TestNewContractClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("rejects invalid contract address", func(t *testing.T) {
		_, err := NewContractClient(mocks.NewMockEthClient(ctrl), 1, "not-an-address", "ab")
		require.Error(t, err)
	})

	t.Run("rejects malformed signer key", func(t *testing.T) {
		_, err := NewContractClient(mocks.NewMockEthClient(ctrl), 1, testContractAddress, "zz")
		require.Error(t, err)
	})
}

func TestContractClient_MintArtwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	t.Run("signs and sends the transaction", func(t *testing.T) {
		eth := mocks.NewMockEthClient(ctrl)
		client := newTestClient(t, eth)

		var sent *types.Transaction
		eth.EXPECT().PendingNonceAt(ctx, gomock.Any()).Return(uint64(3), nil)
		eth.EXPECT().SuggestGasPrice(ctx).Return(big.NewInt(1_000_000_000), nil)
		eth.EXPECT().EstimateGas(ctx, gomock.Any()).Return(uint64(210000), nil)
		eth.EXPECT().
			SendTransaction(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *types.Transaction) error {
				sent = tx
				return nil
			})

		txHash, err := client.MintArtwork(ctx, testCreatorAddress, "ipfs://QmTestMetadata")
		require.NoError(t, err)
		require.NotNil(t, sent)
		assert.Equal(t, sent.Hash().Hex(), txHash)
		assert.Equal(t, uint64(3), sent.Nonce())
		assert.Equal(t, uint64(210000), sent.Gas())
		require.NotNil(t, sent.To())
		assert.Equal(t, common.HexToAddress(testContractAddress), *sent.To())
		assert.NotEmpty(t, sent.Data())
	})

	t.Run("rejects invalid creator address", func(t *testing.T) {
		client := newTestClient(t, mocks.NewMockEthClient(ctrl))
		_, err := client.MintArtwork(ctx, "bogus", "ipfs://QmTestMetadata")
		require.Error(t, err)
	})

	t.Run("propagates send failure", func(t *testing.T) {
		eth := mocks.NewMockEthClient(ctrl)
		client := newTestClient(t, eth)

		eth.EXPECT().PendingNonceAt(ctx, gomock.Any()).Return(uint64(0), nil)
		eth.EXPECT().SuggestGasPrice(ctx).Return(big.NewInt(1), nil)
		eth.EXPECT().EstimateGas(ctx, gomock.Any()).Return(uint64(21000), nil)
		eth.EXPECT().SendTransaction(ctx, gomock.Any()).Return(errors.New("nonce too low"))

		_, err := client.MintArtwork(ctx, testCreatorAddress, "ipfs://QmTestMetadata")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send transaction")
	})
}

func TestContractClient_WaitForReceipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	txHash := common.HexToHash("0x3b198bfd5d2907285af009e9ae84a0ecd63677110d89d7e030251acb87f6487e")

	t.Run("retries until mined", func(t *testing.T) {
		eth := mocks.NewMockEthClient(ctrl)
		client := newTestClient(t, eth)
		mined := &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: txHash}

		gomock.InOrder(
			eth.EXPECT().TransactionReceipt(ctx, txHash).Return(nil, ethereum.NotFound),
			eth.EXPECT().TransactionReceipt(ctx, txHash).Return(mined, nil),
		)

		receipt, err := client.WaitForReceipt(ctx, txHash.Hex(), 30*time.Second)
		require.NoError(t, err)
		assert.Equal(t, txHash, receipt.TxHash)
	})

	t.Run("reverted transaction is permanent", func(t *testing.T) {
		eth := mocks.NewMockEthClient(ctrl)
		client := newTestClient(t, eth)
		reverted := &types.Receipt{Status: types.ReceiptStatusFailed, TxHash: txHash}

		eth.EXPECT().TransactionReceipt(ctx, txHash).Return(reverted, nil)

		_, err := client.WaitForReceipt(ctx, txHash.Hex(), 30*time.Second)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "transaction reverted")
	})

	t.Run("gives up after the timeout", func(t *testing.T) {
		eth := mocks.NewMockEthClient(ctrl)
		client := newTestClient(t, eth)

		eth.EXPECT().
			TransactionReceipt(ctx, txHash).
			Return(nil, ethereum.NotFound).
			AnyTimes()

		_, err := client.WaitForReceipt(ctx, txHash.Hex(), 10*time.Millisecond)
		require.Error(t, err)
	})
}

func TestContractClient_ParseMintedTokenID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := newTestClient(t, mocks.NewMockEthClient(ctrl))
	creatorTopic := common.BytesToHash(common.HexToAddress(testCreatorAddress).Bytes())

	t.Run("extracts the token id", func(t *testing.T) {
		receipt := &types.Receipt{
			Status: types.ReceiptStatusSuccessful,
			Logs: []*types.Log{
				{
					Topics: []common.Hash{
						mintedEventSignature,
						creatorTopic,
						common.BigToHash(big.NewInt(42)),
					},
				},
			},
		}

		tokenID, err := client.ParseMintedTokenID(receipt)
		require.NoError(t, err)
		assert.Equal(t, int64(42), tokenID)
	})

	t.Run("skips unrelated events", func(t *testing.T) {
		transferSig := crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))
		receipt := &types.Receipt{
			Status: types.ReceiptStatusSuccessful,
			Logs: []*types.Log{
				{Topics: []common.Hash{transferSig, creatorTopic, creatorTopic, common.BigToHash(big.NewInt(9))}},
				{Topics: []common.Hash{mintedEventSignature, creatorTopic, common.BigToHash(big.NewInt(9))}},
			},
		}

		tokenID, err := client.ParseMintedTokenID(receipt)
		require.NoError(t, err)
		assert.Equal(t, int64(9), tokenID)
	})

	t.Run("missing event", func(t *testing.T) {
		receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful}
		_, err := client.ParseMintedTokenID(receipt)
		assert.ErrorIs(t, err, domain.ErrMintEventNotFound)
	})
}

func TestContractClient_NativeBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	t.Run("returns the balance", func(t *testing.T) {
		eth := mocks.NewMockEthClient(ctrl)
		client := newTestClient(t, eth)

		eth.EXPECT().
			BalanceAt(ctx, common.HexToAddress(testCreatorAddress), nil).
			Return(big.NewInt(1234), nil)

		balance, err := client.NativeBalance(ctx, testCreatorAddress)
		require.NoError(t, err)
		assert.Equal(t, int64(1234), balance.Int64())
	})

	t.Run("rejects invalid address", func(t *testing.T) {
		client := newTestClient(t, mocks.NewMockEthClient(ctrl))
		_, err := client.NativeBalance(ctx, "bogus")
		require.Error(t, err)
	})
}
