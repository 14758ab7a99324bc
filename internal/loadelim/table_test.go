package loadelim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emberlang/ember/internal/ssa"
)

func TestStateTableGetUnsetReturnsNil(t *testing.T) {
	f := ssa.NewFunc("t", nil)
	tbl := NewStateTable()

	require.Nil(t, tbl.Get(f.Start))
}

func TestStateTableSetThenGet(t *testing.T) {
	f := ssa.NewFunc("t", nil)
	tbl := NewStateTable()

	tbl.Set(f.Start, emptyState)
	require.Same(t, emptyState, tbl.Get(f.Start))
}

func TestStateTableGrowsForHigherIDs(t *testing.T) {
	f := ssa.NewFunc("t", nil)
	v := f.NewValue(f.Entry, ssa.OpConstNil, nil)

	tbl := NewStateTable()
	tbl.Set(v, emptyState)

	require.Nil(t, tbl.Get(f.Start), "setting a later id must not disturb an unset earlier one")
	require.Same(t, emptyState, tbl.Get(v))
}
