package domain

import "errors"

var (
	// ErrArtworkNotFound is returned when an artwork is not found
	ErrArtworkNotFound = errors.New("artwork not found")

	// ErrDuplicateArtwork is returned when an artwork with the same content hash already exists
	ErrDuplicateArtwork = errors.New("duplicate artwork")

	// ErrAlreadyMinted is returned when attempting to mint an artwork that is already minted
	ErrAlreadyMinted = errors.New("artwork already minted")

	// ErrMetadataMissing is returned when minting an artwork without a metadata URI
	ErrMetadataMissing = errors.New("artwork metadata not created")

	// ErrNotEligible is returned when an artwork has not crossed the vote threshold
	ErrNotEligible = errors.New("artwork not eligible for minting")

	// ErrNonceNotFound is returned when no challenge nonce exists for a wallet
	ErrNonceNotFound = errors.New("nonce not found or expired")

	// ErrSignatureMismatch is returned when a recovered signer does not match the claimed wallet
	ErrSignatureMismatch = errors.New("signature verification failed")

	// ErrInsufficientBalance is returned when a voter's on-chain balance is below the minimum
	ErrInsufficientBalance = errors.New("insufficient on-chain balance")

	// ErrMintEventNotFound is returned when the mint transaction receipt carries no Minted event
	ErrMintEventNotFound = errors.New("mint event not found in receipt")

	// ErrValidation is returned when request input fails validation
	ErrValidation = errors.New("validation failed")
)
