package solana

import (
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"github.com/chinmay1088/emptier/errs"
)

// IsValidAddress reports whether s decodes from base58 to exactly 32 bytes.
func IsValidAddress(s string) bool {
	raw, err := base58.Decode(s)
	return err == nil && len(raw) == solana.PublicKeyLength
}

// ParseAddress parses a destination public key.
func ParseAddress(s string) (solana.PublicKey, error) {
	if !IsValidAddress(s) {
		return solana.PublicKey{}, errs.WithDetails(errs.ErrInvalidDestination, map[string]string{"address": s})
	}
	raw, _ := base58.Decode(s)
	return solana.PublicKeyFromBytes(raw), nil
}
