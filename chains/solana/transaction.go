package solana

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
)

// Transaction collects instructions for one unsigned Solana transaction.
// The wallet provider signs it.
type Transaction struct {
	Instructions []solana.Instruction
	FeePayer     solana.PublicKey
}

func NewTransaction(feePayer solana.PublicKey) *Transaction {
	return &Transaction{
		Instructions: make([]solana.Instruction, 0, 1),
		FeePayer:     feePayer,
	}
}

// AddTransferInstruction moves lamports between two system accounts.
func (tx *Transaction) AddTransferInstruction(from, to solana.PublicKey, lamports uint64) *Transaction {
	tx.Instructions = append(tx.Instructions, system.NewTransferInstruction(lamports, from, to).Build())
	return tx
}

// AddCreateTokenAccountInstruction creates the associated token account of wallet for mint,
// paid for by payer.
func (tx *Transaction) AddCreateTokenAccountInstruction(payer, wallet, mint solana.PublicKey) *Transaction {
	tx.Instructions = append(tx.Instructions, associatedtokenaccount.NewCreateInstruction(payer, wallet, mint).Build())
	return tx
}

// AddTokenTransferInstruction moves amount raw units from source to destination token accounts.
func (tx *Transaction) AddTokenTransferInstruction(source, destination, owner solana.PublicKey, amount uint64) *Transaction {
	tx.Instructions = append(tx.Instructions,
		token.NewTransferInstruction(amount, source, destination, owner, []solana.PublicKey{}).Build())
	return tx
}

// Build compiles the instructions against a recent blockhash.
func (tx *Transaction) Build(blockhash solana.Hash) (*solana.Transaction, error) {
	if len(tx.Instructions) == 0 {
		return nil, fmt.Errorf("transaction has no instructions")
	}
	if blockhash.IsZero() {
		return nil, fmt.Errorf("blockhash is empty")
	}

	stx, err := solana.NewTransaction(tx.Instructions, blockhash, solana.TransactionPayer(tx.FeePayer))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return stx, nil
}
