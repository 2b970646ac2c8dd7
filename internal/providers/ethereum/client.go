package ethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/aetheria-gallery/aetheria/internal/adapter"
	"github.com/aetheria-gallery/aetheria/internal/domain"
	"github.com/aetheria-gallery/aetheria/internal/logger"
)

// mintedEventSignature is the topic hash of
// Minted(address indexed creator, uint256 indexed tokenId, string tokenURI)
var mintedEventSignature = crypto.Keccak256Hash([]byte("Minted(address,uint256,string)"))

// mintArtworkABI covers the single write call the gallery makes against the
// exhibit contract: mintArtwork(address creator, string tokenURI) returns (uint256)
const mintArtworkABI = `[{"inputs":[{"name":"creator","type":"address"},{"name":"tokenURI","type":"string"}],"name":"mintArtwork","outputs":[{"name":"","type":"uint256"}],"stateMutability":"nonpayable","type":"function"}]`

// ContractClient defines the operations the gallery performs against the
// exhibit ERC-721 contract
//
//go:generate mockgen -source=client.go -destination=../../mocks/contract_client.go -package=mocks -mock_names=ContractClient=MockContractClient
type ContractClient interface {
	// MintArtwork sends a mintArtwork transaction for the given creator and
	// token URI and returns the transaction hash
	MintArtwork(ctx context.Context, creator string, tokenURI string) (string, error)

	// WaitForReceipt polls until the transaction is mined or the timeout elapses
	WaitForReceipt(ctx context.Context, txHash string, timeout time.Duration) (*types.Receipt, error)

	// ParseMintedTokenID extracts the minted token ID from a transaction receipt
	ParseMintedTokenID(receipt *types.Receipt) (int64, error)

	// NativeBalance returns the wei balance of a wallet at the latest block
	NativeBalance(ctx context.Context, wallet string) (*big.Int, error)

	// Close closes the underlying connection
	Close()
}

type contractClient struct {
	client          adapter.EthClient
	chainID         *big.Int
	contractAddress common.Address
	signerKey       *ecdsa.PrivateKey
	signerAddress   common.Address
}

// NewContractClient creates a client bound to the exhibit contract. The signer
// key is the hex-encoded private key of the contract owner account.
func NewContractClient(client adapter.EthClient, chainID int64, contractAddress string, signerKeyHex string) (ContractClient, error) {
	if !common.IsHexAddress(contractAddress) {
		return nil, fmt.Errorf("invalid contract address: %s", contractAddress)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(signerKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse signer key: %w", err)
	}

	return &contractClient{
		client:          client,
		chainID:         big.NewInt(chainID),
		contractAddress: common.HexToAddress(contractAddress),
		signerKey:       key,
		signerAddress:   crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// MintArtwork sends a mintArtwork transaction for the given creator and token URI
func (c *contractClient) MintArtwork(ctx context.Context, creator string, tokenURI string) (string, error) {
	if !common.IsHexAddress(creator) {
		return "", fmt.Errorf("invalid creator address: %s", creator)
	}

	contractABI, err := abi.JSON(strings.NewReader(mintArtworkABI))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	data, err := contractABI.Pack("mintArtwork", common.HexToAddress(creator), tokenURI)
	if err != nil {
		return "", fmt.Errorf("failed to pack data: %w", err)
	}

	nonce, err := c.client.PendingNonceAt(ctx, c.signerAddress)
	if err != nil {
		return "", fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get gas price: %w", err)
	}

	gasLimit, err := c.client.EstimateGas(ctx, ethereum.CallMsg{
		From: c.signerAddress,
		To:   &c.contractAddress,
		Data: data,
	})
	if err != nil {
		return "", fmt.Errorf("failed to estimate gas: %w", err)
	}

	tx := types.NewTransaction(nonce, c.contractAddress, big.NewInt(0), gasLimit, gasPrice, data)
	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.signerKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	logger.InfoCtx(ctx, "mint transaction sent",
		zap.String("txHash", signedTx.Hash().Hex()),
		zap.String("creator", creator),
		zap.Uint64("nonce", nonce))

	return signedTx.Hash().Hex(), nil
}

// WaitForReceipt polls until the transaction is mined or the timeout elapses
func (c *contractClient) WaitForReceipt(ctx context.Context, txHash string, timeout time.Duration) (*types.Receipt, error) {
	hash := common.HexToHash(txHash)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 1 * time.Second
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = timeout
	b.Multiplier = 1.5
	b.RandomizationFactor = 0.5

	var receipt *types.Receipt
	operation := func() error {
		r, err := c.client.TransactionReceipt(ctx, hash)
		if err != nil {
			// ethereum.NotFound means the transaction is not mined yet
			logger.DebugCtx(ctx, "transaction not mined yet",
				zap.String("txHash", txHash),
				zap.Error(err))
			return fmt.Errorf("failed to get receipt: %w", err)
		}

		if r.Status != types.ReceiptStatusSuccessful {
			// A reverted transaction will never succeed on retry
			return backoff.Permanent(fmt.Errorf("transaction reverted: %s", txHash))
		}

		receipt = r
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("timeout or error waiting for receipt: %w", err)
	}

	return receipt, nil
}

// ParseMintedTokenID extracts the minted token ID from a transaction receipt
func (c *contractClient) ParseMintedTokenID(receipt *types.Receipt) (int64, error) {
	for _, vLog := range receipt.Logs {
		if len(vLog.Topics) < 3 {
			continue
		}
		if vLog.Topics[0] != mintedEventSignature {
			continue
		}

		tokenID := new(big.Int).SetBytes(vLog.Topics[2].Bytes())
		if !tokenID.IsInt64() {
			return 0, fmt.Errorf("token ID out of range: %s", tokenID.String())
		}
		return tokenID.Int64(), nil
	}

	return 0, domain.ErrMintEventNotFound
}

// NativeBalance returns the wei balance of a wallet at the latest block
func (c *contractClient) NativeBalance(ctx context.Context, wallet string) (*big.Int, error) {
	if !common.IsHexAddress(wallet) {
		return nil, fmt.Errorf("invalid wallet address: %s", wallet)
	}

	balance, err := c.client.BalanceAt(ctx, common.HexToAddress(wallet), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	return balance, nil
}

// Close closes the underlying connection
func (c *contractClient) Close() {
	c.client.Close()
}
