package incr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	rt := NewRuntime()
	Bind(rt)
	t.Cleanup(Release)
	return rt
}

func TestEffectLogsInitialValue(t *testing.T) {
	rt := newTestRuntime(t)
	var log []string

	s := NewState(1)
	sub := NewEffect(func(sc *SignalContext) {
		log = append(log, fmt.Sprint(s.Get(sc)))
	})
	defer sub.Unsubscribe()

	rt.Update()
	assert.Equal(t, []string{"1"}, log)
}

func TestUpdateTwiceRunsOnce(t *testing.T) {
	rt := newTestRuntime(t)
	var log []string

	s := NewState(1)
	sub := NewEffect(func(sc *SignalContext) {
		log = append(log, fmt.Sprint(s.Get(sc)))
	})
	defer sub.Unsubscribe()

	rt.Update()
	rt.Update()
	assert.Equal(t, []string{"1"}, log)
}

func TestMapChain(t *testing.T) {
	rt := newTestRuntime(t)
	var log []int

	s := NewState(10)
	d := Map(s, func(v int) int { return v + 1 })
	sub := NewEffect(func(sc *SignalContext) {
		log = append(log, d.Get(sc))
	})
	defer sub.Unsubscribe()

	rt.Update()
	s.Set(20, rt.AC())
	rt.Update()

	assert.Equal(t, []int{11, 21}, log)
}

func TestFoldAccumulates(t *testing.T) {
	rt := newTestRuntime(t)
	var log []int

	s := NewState(0)
	f := NewFold(s, 0, func(acc, v int) int { return acc + v })
	sub := NewEffect(func(sc *SignalContext) {
		log = append(log, f.Get(sc))
	})
	defer sub.Unsubscribe()

	rt.Update()
	s.Set(1, rt.AC())
	rt.Update()
	s.Set(2, rt.AC())
	rt.Update()

	assert.Equal(t, []int{0, 1, 3}, log)
}

func TestNothingLoggedAfterDrop(t *testing.T) {
	rt := newTestRuntime(t)
	var log []int

	s := NewState(5)
	sub := NewEffect(func(sc *SignalContext) {
		log = append(log, s.Get(sc))
	})
	sub.Unsubscribe()

	s.Set(6, rt.AC())
	rt.Update()

	assert.Empty(t, log)
}

func TestGlitchFreeSiblingEffects(t *testing.T) {
	rt := newTestRuntime(t)

	s := NewState(1)
	d1 := Map(s, func(v int) int { return v * 2 })
	d2 := Map(s, func(v int) int { return v * 3 })

	var sums []int
	observe := func(sc *SignalContext) {
		// a glitch would mix an old d1 with a new d2
		sums = append(sums, d1.Get(sc)+d2.Get(sc))
	}
	s1 := NewEffect(observe)
	defer s1.Unsubscribe()
	s2 := NewEffect(observe)
	defer s2.Unsubscribe()

	rt.Update()
	s.Set(4, rt.AC())
	rt.Update()

	assert.Equal(t, []int{5, 5, 20, 20}, sums)
}

func TestSetDedupSuppressesEffects(t *testing.T) {
	rt := newTestRuntime(t)
	runs := 0

	s := NewState(3)
	sub := NewEffect(func(sc *SignalContext) {
		s.Get(sc)
		runs++
	})
	defer sub.Unsubscribe()
	rt.Update()

	s.SetDedup(3, rt.AC())
	rt.Update()

	assert.Equal(t, 1, runs)
}
