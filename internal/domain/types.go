package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// VoteAction represents the outcome of a vote toggle
type VoteAction string

const (
	// VoteActionAdded means the toggle created a new vote
	VoteActionAdded VoteAction = "added"
	// VoteActionRemoved means the toggle removed an existing vote
	VoteActionRemoved VoteAction = "removed"
)

// Wallet represents a blockchain account address used as user identity
type Wallet string

// NewWallet normalizes a raw address string into a Wallet (lowercased)
func NewWallet(address string) Wallet {
	return Wallet(strings.ToLower(strings.TrimSpace(address)))
}

// Valid reports whether the wallet is a syntactically valid Ethereum address
func (w Wallet) Valid() bool {
	return common.IsHexAddress(string(w))
}

// String returns the normalized address string
func (w Wallet) String() string {
	return string(w)
}

// Equal compares two wallets case-insensitively
func (w Wallet) Equal(other Wallet) bool {
	return strings.EqualFold(string(w), string(other))
}

// MintEligible reports whether an artwork with the given state can be minted.
// Recomputed on every read; never cached.
func MintEligible(voteCount int64, minted bool, threshold int64) bool {
	return voteCount >= threshold && !minted
}
