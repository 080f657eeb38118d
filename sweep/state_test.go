package sweep

import (
	"fmt"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chinmay1088/emptier/chains"
)

func holdingsN(n int) []chains.Holding {
	out := make([]chains.Holding, n)
	for i := range out {
		out[i] = chains.Holding{ID: fmt.Sprintf("token-%d", i), Symbol: fmt.Sprintf("T%d", i), Balance: big.NewInt(int64(i + 1))}
	}
	return out
}

func TestState_SelectAllThenDeselectAll(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 8; n++ {
		s := NewState()
		s.Connect(Session{Network: chains.Ethereum})
		s.SetHoldings(holdingsN(n))

		s.SelectAll()
		assert.Len(t, s.Selected(), n)
		s.DeselectAll()
		assert.Empty(t, s.Selected())
	}
}

func TestState_ToggleUnknown(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.SetHoldings(holdingsN(2))

	_, ok := s.Toggle("token-9")
	assert.False(t, ok)
	assert.Empty(t, s.Selected())
}

func TestState_ConnectClearsPrevious(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.Connect(Session{Network: chains.Ethereum, Account: "a"})
	s.SetHoldings(holdingsN(3))
	s.SelectAll()
	s.SetStatus("token-1", StatusError)

	s.Connect(Session{Network: chains.BNB, Account: "b"})
	snap := s.Snapshot()
	require.True(t, snap.Connected())
	assert.Equal(t, "b", snap.Session.Account)
	assert.Empty(t, snap.Holdings)
	assert.Empty(t, snap.Selected)
	assert.Empty(t, snap.Status)
}

func TestState_SnapshotIsACopy(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.Connect(Session{Network: chains.Ethereum})
	s.SetHoldings(holdingsN(2))
	s.SelectAll()

	snap := s.Snapshot()
	snap.Selected[0] = "mutated"
	snap.Status["x"] = StatusSuccess
	snap.Session.Account = "mutated"

	fresh := s.Snapshot()
	assert.Equal(t, "token-0", fresh.Selected[0])
	assert.NotContains(t, fresh.Status, "x")
	assert.Equal(t, "", fresh.Session.Account)
	assert.True(t, fresh.IsSelected("token-1"))
}

func TestState_UpdateRequiresSession(t *testing.T) {
	t.Parallel()

	s := NewState()
	assert.False(t, s.Update(func(*Session) {}))

	s.Connect(Session{})
	assert.True(t, s.Update(func(sess *Session) { sess.Destination = "x" }))
	assert.Equal(t, "x", s.Snapshot().Session.Destination)
}

func TestState_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.Connect(Session{Network: chains.Ethereum})
	s.SetHoldings(holdingsN(16))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("token-%d", i)
			s.Toggle(id)
			s.SetStatus(id, StatusSuccess)
			_ = s.Snapshot()
		}(i)
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Len(t, snap.Selected, 16)
	assert.Len(t, snap.Status, 16)
}
