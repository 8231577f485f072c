package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateCellSet(t *testing.T) {
	rt := NewRuntime()
	cell := NewStateCell(rt, 1)

	assert.Equal(t, 1, cell.Value())
	assert.Equal(t, uint64(0), cell.Version())

	cell.Set(2, rt.AC())
	assert.Equal(t, 2, cell.Value())
	assert.Equal(t, uint64(1), cell.Version())

	// unconditional: same value still counts as a change
	cell.Set(2, rt.AC())
	assert.Equal(t, uint64(2), cell.Version())
}

func TestStateCellSetDedup(t *testing.T) {
	rt := NewRuntime()
	cell := NewStateCell(rt, 1)

	cell.SetDedup(1, rt.AC())
	assert.Equal(t, uint64(0), cell.Version())

	cell.SetDedup(5, rt.AC())
	assert.Equal(t, 5, cell.Value())
	assert.Equal(t, uint64(1), cell.Version())
}

func TestStateCellSetDedupCustomEquality(t *testing.T) {
	rt := NewRuntime()
	// equal modulo 10
	cell := NewStateCellEq(rt, 3, func(a, b any) bool {
		return a.(int)%10 == b.(int)%10
	})

	cell.SetDedup(13, rt.AC())
	assert.Equal(t, 3, cell.Value())

	cell.SetDedup(4, rt.AC())
	assert.Equal(t, 4, cell.Value())
}

func TestStateCellNotifiesSinksWithDirty(t *testing.T) {
	rt := NewRuntime()
	cell := NewStateCell(rt, 1)

	var levels []Dirty
	leaf := &probeSink{onNotify: func(level Dirty) { levels = append(levels, level) }}
	leaf.binder = NewSourceBinder(leaf, 0)
	leaf.binder.Update(func(sc *SignalContext) { sc.Observe(cell) }, rt.UC())

	cell.Set(2, rt.AC())
	assert.Equal(t, []Dirty{DirtyYes}, levels)
}

func TestStateCellGetValueAfterSet(t *testing.T) {
	rt := NewRuntime()
	cell := NewStateCell(rt, "a")
	cell.Set("b", rt.AC())
	assert.Equal(t, "b", cell.Get(rt.SC()))
}
