package solana

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) solana.PrivateKey {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return key
}

// fakeRPC serves canned Solana cluster state.
type fakeRPC struct {
	mu sync.Mutex

	balance       uint64
	tokenAccounts string
	tokenBalances map[solana.PublicKey]string
	existing      map[solana.PublicKey]bool
	failed        map[solana.Signature]bool
	pending       bool

	ownerConf *rpc.GetTokenAccountsConfig
	ownerOpts *rpc.GetTokenAccountsOpts
	lookups   []solana.PublicKey
}

func newFakeRPC() *fakeRPC {
	return &fakeRPC{
		tokenAccounts: `{"context":{"slot":1},"value":[]}`,
		tokenBalances: make(map[solana.PublicKey]string),
		existing:      make(map[solana.PublicKey]bool),
		failed:        make(map[solana.Signature]bool),
	}
}

func (f *fakeRPC) GetBalance(context.Context, solana.PublicKey, rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
	return &rpc.GetBalanceResult{Value: f.balance}, nil
}

func (f *fakeRPC) GetTokenAccountsByOwner(_ context.Context, _ solana.PublicKey, conf *rpc.GetTokenAccountsConfig, opts *rpc.GetTokenAccountsOpts) (*rpc.GetTokenAccountsResult, error) {
	f.ownerConf, f.ownerOpts = conf, opts

	var out rpc.GetTokenAccountsResult
	if err := json.Unmarshal([]byte(f.tokenAccounts), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *fakeRPC) GetTokenAccountBalance(_ context.Context, account solana.PublicKey, _ rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error) {
	amount, ok := f.tokenBalances[account]
	if !ok {
		return nil, rpc.ErrNotFound
	}
	return &rpc.GetTokenAccountBalanceResult{Value: &rpc.UiTokenAmount{Amount: amount, Decimals: 6}}, nil
}

func (f *fakeRPC) GetAccountInfoWithOpts(_ context.Context, account solana.PublicKey, _ *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, account)

	if !f.existing[account] {
		return nil, rpc.ErrNotFound
	}
	return &rpc.GetAccountInfoResult{Value: &rpc.Account{Owner: solana.TokenProgramID}}, nil
}

func (f *fakeRPC) GetLatestBlockhash(context.Context, rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	return &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{Blockhash: solana.Hash(solana.SysVarClockPubkey)},
	}, nil
}

func (f *fakeRPC) GetSignatureStatuses(_ context.Context, _ bool, sigs ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := &rpc.GetSignatureStatusesResult{}
	for _, sig := range sigs {
		switch {
		case f.pending:
			out.Value = append(out.Value, nil)
		case f.failed[sig]:
			out.Value = append(out.Value, &rpc.SignatureStatusesResult{
				Err:                map[string]any{"InstructionError": []any{0, "Custom"}},
				ConfirmationStatus: rpc.ConfirmationStatusConfirmed,
			})
		default:
			out.Value = append(out.Value, &rpc.SignatureStatusesResult{ConfirmationStatus: rpc.ConfirmationStatusConfirmed})
		}
	}
	return out, nil
}

// fakeProvider records what a browser wallet would be asked to sign.
type fakeProvider struct {
	key       solana.PublicKey
	connErr   error
	rejectAt  int
	submitted []*solana.Transaction
}

func (p *fakeProvider) Connect(context.Context) (solana.PublicKey, error) {
	return p.key, p.connErr
}

func (p *fakeProvider) SignAndSendTransaction(_ context.Context, tx *solana.Transaction) (solana.Signature, error) {
	p.submitted = append(p.submitted, tx)
	n := len(p.submitted)
	if n == p.rejectAt {
		return solana.Signature{}, fmt.Errorf("user rejected the request")
	}

	var sig solana.Signature
	binary.BigEndian.PutUint64(sig[:8], uint64(n))
	return sig, nil
}

// programs lists the program invoked by each instruction of tx.
func programs(t *testing.T, tx *solana.Transaction) []solana.PublicKey {
	t.Helper()
	out := make([]solana.PublicKey, 0, len(tx.Message.Instructions))
	for _, inst := range tx.Message.Instructions {
		pk, err := tx.ResolveProgramIDIndex(inst.ProgramIDIndex)
		require.NoError(t, err)
		out = append(out, pk)
	}
	return out
}

// tokenAccountsJSON renders a jsonParsed getTokenAccountsByOwner response.
// Each entry is token account, mint, raw amount.
func tokenAccountsJSON(owner solana.PublicKey, entries ...[3]string) string {
	items := make([]string, 0, len(entries))
	for _, e := range entries {
		items = append(items, fmt.Sprintf(`{
  "pubkey": %q,
  "account": {
    "lamports": 2039280,
    "owner": "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA",
    "executable": false,
    "data": {
      "program": "spl-token",
      "space": 165,
      "parsed": {
        "type": "account",
        "info": {
          "mint": %q,
          "owner": %q,
          "state": "initialized",
          "tokenAmount": {"amount": %q, "decimals": 6, "uiAmountString": "x"}
        }
      }
    }
  }
}`, e[0], e[1], owner.String(), e[2]))
	}
	return `{"context":{"slot":1},"value":[` + strings.Join(items, ",") + `]}`
}
