package sweep

import (
	"math/big"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/chinmay1088/emptier/chains"
)

// Status is the per-asset transfer state.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Session is a connected account on one network.
type Session struct {
	ID            uuid.UUID
	Network       chains.Network
	Account       string
	NativeBalance *big.Int
	NativeUSD     decimal.NullDecimal
	Destination   string
	FeeOverride   *big.Int
	ConnectedAt   time.Time
}

// Snapshot is a consistent copy of the state.
type Snapshot struct {
	Session  *Session
	Holdings []chains.Holding
	Selected []string
	Status   map[string]Status
}

// Connected reports whether the snapshot has a session.
func (s Snapshot) Connected() bool {
	return s.Session != nil
}

// IsSelected reports whether id is in the selection.
func (s Snapshot) IsSelected(id string) bool {
	for _, sel := range s.Selected {
		if sel == id {
			return true
		}
	}
	return false
}

// State holds the session, holdings, token selection and transfer statuses.
// Selection and status only ever reference current holdings (status may also
// carry the native symbol).
type State struct {
	mu       sync.Mutex
	session  *Session
	holdings []chains.Holding
	selected []string
	status   map[string]Status
}

func NewState() *State {
	return &State{status: make(map[string]Status)}
}

// Connect replaces any previous session and clears everything derived from it.
func (s *State) Connect(session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = &session
	s.holdings = nil
	s.selected = nil
	s.status = make(map[string]Status)
}

// Disconnect drops the session, holdings, selection and statuses together.
func (s *State) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	s.holdings = nil
	s.selected = nil
	s.status = make(map[string]Status)
}

// Update applies fn to the session under the lock. It reports false when not connected.
func (s *State) Update(fn func(*Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return false
	}
	fn(s.session)
	return true
}

// SetHoldings replaces the holdings and prunes selection and statuses that
// no longer refer to one.
func (s *State) SetHoldings(holdings []chains.Holding) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.holdings = append([]chains.Holding(nil), holdings...)

	known := make(map[string]bool, len(holdings))
	for _, h := range holdings {
		known[h.ID] = true
	}

	selected := s.selected[:0]
	for _, id := range s.selected {
		if known[id] {
			selected = append(selected, id)
		}
	}
	s.selected = selected

	native := ""
	if s.session != nil {
		native = s.session.Network.NativeSymbol
	}
	for id := range s.status {
		if !known[id] && id != native {
			delete(s.status, id)
		}
	}
}

// Holding looks up a holding by id.
func (s *State) Holding(id string) (chains.Holding, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range s.holdings {
		if h.ID == id {
			return h, true
		}
	}
	return chains.Holding{}, false
}

// Toggle flips the selection of id and reports whether it is now selected.
// Unknown ids are ignored.
func (s *State) Toggle(id string) (selected, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasHolding(id) {
		return false, false
	}
	for i, sel := range s.selected {
		if sel == id {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return false, true
		}
	}
	s.selected = append(s.selected, id)
	return true, true
}

// SelectAll selects every holding, keeping existing selections first.
func (s *State) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	chosen := make(map[string]bool, len(s.selected))
	for _, id := range s.selected {
		chosen[id] = true
	}
	for _, h := range s.holdings {
		if !chosen[h.ID] {
			s.selected = append(s.selected, h.ID)
			chosen[h.ID] = true
		}
	}
}

func (s *State) DeselectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Selected returns the selected ids in selection order.
func (s *State) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.selected...)
}

func (s *State) SetStatus(id string, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[id] = status
}

// Snapshot returns a copy of the state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Holdings: append([]chains.Holding(nil), s.holdings...),
		Selected: append([]string(nil), s.selected...),
		Status:   make(map[string]Status, len(s.status)),
	}
	for id, st := range s.status {
		snap.Status[id] = st
	}
	if s.session != nil {
		session := *s.session
		snap.Session = &session
	}
	return snap
}

func (s *State) hasHolding(id string) bool {
	for _, h := range s.holdings {
		if h.ID == id {
			return true
		}
	}
	return false
}
