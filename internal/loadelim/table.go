package loadelim

import "github.com/emberlang/ember/internal/ssa"

// StateTable is a dense effect-node-id -> *AbstractState table. It grows
// monotonically over one pass invocation; Get returns nil for a node that
// has not yet been analyzed ("not yet analyzed", distinct from a node
// analyzed to emptyState).
type StateTable struct {
	byID []*AbstractState
}

// NewStateTable returns an empty table.
func NewStateTable() *StateTable {
	return &StateTable{}
}

// Get returns the state recorded for n, or nil if n has no recorded state.
func (t *StateTable) Get(n *ssa.Value) *AbstractState {
	if n == nil || int(n.ID) >= len(t.byID) {
		return nil
	}
	return t.byID[n.ID]
}

// Set unconditionally records s for n, growing the table if needed.
// Monotone convergence is the reducer's responsibility (see UpdateState
// in reducer.go), not this table's.
func (t *StateTable) Set(n *ssa.Value, s *AbstractState) {
	id := int(n.ID)
	if id >= len(t.byID) {
		grown := make([]*AbstractState, id+1)
		copy(grown, t.byID)
		t.byID = grown
	}
	t.byID[id] = s
}
