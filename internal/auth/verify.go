package auth

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/aetheria-gallery/aetheria/internal/domain"
)

// NonceMessage builds the exact text a wallet must personal-sign to
// authenticate. Changing this string invalidates every in-flight login.
func NonceMessage(nonce string) string {
	return fmt.Sprintf("Sign this message to authenticate with Aetheria:\nNonce: %s", nonce)
}

// VerifySignature recovers the signer of an EIP-191 personal-sign signature
// over message and checks it against the claimed wallet. The signature is the
// 65-byte hex string wallets produce, with or without the 0x prefix.
func VerifySignature(message string, signature string, wallet domain.Wallet) error {
	sig, err := hex.DecodeString(strings.TrimPrefix(signature, "0x"))
	if err != nil {
		return fmt.Errorf("failed to decode signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return fmt.Errorf("invalid signature length: %d", len(sig))
	}

	// Wallets return V as 27/28, go-ethereum expects 0/1
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig = append([]byte(nil), sig...)
		sig[crypto.RecoveryIDOffset] -= 27
	}

	hash := accounts.TextHash([]byte(message))
	pubKey, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return fmt.Errorf("failed to recover public key: %w", err)
	}

	recovered := domain.NewWallet(crypto.PubkeyToAddress(*pubKey).Hex())
	if !recovered.Equal(wallet) {
		return domain.ErrSignatureMismatch
	}
	return nil
}
