package solana

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// Provider is the subset of a Solana wallet the driver needs.
type Provider interface {
	// Connect asks the wallet for access and returns its public key.
	Connect(ctx context.Context) (solana.PublicKey, error)
	// SignAndSendTransaction signs tx with the wallet key and submits it.
	SignAndSendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}
