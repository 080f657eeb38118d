package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Sender submits signed transactions. *rpc.Client satisfies it.
type Sender interface {
	SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
}

// KeyedProvider is a Provider backed by a local private key.
type KeyedProvider struct {
	key        solana.PrivateKey
	sender     Sender
	commitment rpc.CommitmentType
}

func NewKeyedProvider(key solana.PrivateKey, sender Sender, commitment rpc.CommitmentType) *KeyedProvider {
	if commitment == "" {
		commitment = rpc.CommitmentConfirmed
	}
	return &KeyedProvider{key: key, sender: sender, commitment: commitment}
}

// LoadKeygenFile reads a solana-keygen JSON keypair.
func LoadKeygenFile(path string) (solana.PrivateKey, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keypair %s: %w", path, err)
	}
	return key, nil
}

func (p *KeyedProvider) PublicKey() solana.PublicKey {
	return p.key.PublicKey()
}

func (p *KeyedProvider) Connect(context.Context) (solana.PublicKey, error) {
	if len(p.key) == 0 {
		return solana.PublicKey{}, fmt.Errorf("no key loaded")
	}
	return p.key.PublicKey(), nil
}

func (p *KeyedProvider) SignAndSendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if p.sender == nil {
		return solana.Signature{}, fmt.Errorf("no rpc connection")
	}

	owner := p.key.PublicKey()
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(owner) {
			return &p.key
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	sig, err := p.sender.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: p.commitment,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	return sig, nil
}
