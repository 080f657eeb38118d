package solana

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*solana.Transaction
	opts []rpc.TransactionOpts
	err  error
}

func (s *fakeSender) SendTransactionWithOpts(_ context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error) {
	if s.err != nil {
		return solana.Signature{}, s.err
	}
	s.sent = append(s.sent, tx)
	s.opts = append(s.opts, opts)
	return tx.Signatures[0], nil
}

func TestKeyedProvider_SignAndSend(t *testing.T) {
	t.Parallel()

	key := newKey(t)
	sender := &fakeSender{}
	p := NewKeyedProvider(key, sender, "")

	pk, err := p.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey(), pk)

	tx, err := NewTransaction(pk).AddTransferInstruction(pk, solana.SysVarRentPubkey, 10).Build(solana.Hash(solana.SysVarClockPubkey))
	require.NoError(t, err)

	sig, err := p.SignAndSendTransaction(context.Background(), tx)
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, tx.Signatures[0], sig)
	assert.Equal(t, rpc.CommitmentConfirmed, sender.opts[0].PreflightCommitment)
	require.NoError(t, tx.VerifySignatures())
}

func TestKeyedProvider_ForeignPayer(t *testing.T) {
	t.Parallel()

	p := NewKeyedProvider(newKey(t), &fakeSender{}, rpc.CommitmentFinalized)
	other := newKey(t).PublicKey()

	tx, err := NewTransaction(other).AddTransferInstruction(other, solana.SysVarRentPubkey, 10).Build(solana.Hash(solana.SysVarClockPubkey))
	require.NoError(t, err)

	_, err = p.SignAndSendTransaction(context.Background(), tx)
	require.Error(t, err)
}

func TestKeyedProvider_SendError(t *testing.T) {
	t.Parallel()

	key := newKey(t)
	p := NewKeyedProvider(key, &fakeSender{err: errors.New("blockhash not found")}, "")
	pk := key.PublicKey()

	tx, err := NewTransaction(pk).AddTransferInstruction(pk, solana.SysVarRentPubkey, 10).Build(solana.Hash(solana.SysVarClockPubkey))
	require.NoError(t, err)

	_, err = p.SignAndSendTransaction(context.Background(), tx)
	require.ErrorContains(t, err, "blockhash not found")
}

func TestKeyedProvider_NoKey(t *testing.T) {
	t.Parallel()

	_, err := NewKeyedProvider(nil, nil, "").Connect(context.Background())
	require.Error(t, err)
}

func TestLoadKeygenFile(t *testing.T) {
	t.Parallel()

	key := newKey(t)
	ints := make([]int, len(key))
	for i, b := range key {
		ints[i] = int(b)
	}
	buf, err := json.Marshal(ints)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, os.WriteFile(path, buf, 0o600))

	loaded, err := LoadKeygenFile(path)
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey(), loaded.PublicKey())

	_, err = LoadKeygenFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
