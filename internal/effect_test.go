package internal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectRunsOnCreation(t *testing.T) {
	rt := NewRuntime()
	cell := NewStateCell(rt, 1)
	var log []string

	NewEffect(rt, func(sc *SignalContext) {
		log = append(log, fmt.Sprintf("%v", cell.Get(sc)))
	}, KindDefault)

	rt.Update()
	assert.Equal(t, []string{"1"}, log)

	// a second update runs nothing
	rt.Update()
	assert.Equal(t, []string{"1"}, log)
}

func TestEffectRunsAtMostOncePerPhase(t *testing.T) {
	rt := NewRuntime()
	a := NewStateCell(rt, 1)
	b := NewStateCell(rt, 2)
	runs := 0

	NewEffect(rt, func(sc *SignalContext) {
		sc.Observe(a)
		sc.Observe(b)
		runs++
	}, KindDefault)
	rt.Update()

	// both sources notify in one action; the effect still runs once
	ac := rt.AC()
	a.Set(10, ac)
	b.Set(20, ac)
	rt.Update()

	assert.Equal(t, 2, runs)
}

func TestEffectSkipsWhenSourcesSettleClean(t *testing.T) {
	rt := NewRuntime()
	cell := NewStateCell(rt, 1)
	cutoff, _ := derive(rt, NodeSettings{}, never, cell)
	runs := 0

	NewEffect(rt, func(sc *SignalContext) {
		sc.Observe(cutoff)
		runs++
	}, KindDefault)
	rt.Update()
	assert.Equal(t, 1, runs)

	// the cutoff absorbs the change; the closure is skipped entirely
	cell.Set(2, rt.AC())
	rt.Update()
	assert.Equal(t, 1, runs)
}

func TestUnsubscribeBeforeFirstRun(t *testing.T) {
	rt := NewRuntime()
	cell := NewStateCell(rt, 5)
	var log []int

	sub := NewEffect(rt, func(sc *SignalContext) {
		log = append(log, cell.Get(sc).(int))
	}, KindDefault)
	sub.Unsubscribe()

	cell.Set(6, rt.AC())
	rt.Update()
	assert.Empty(t, log)
}

func TestUnsubscribeDetachesEagerly(t *testing.T) {
	rt := NewRuntime()
	cell := NewStateCell(rt, 5)
	sub := NewEffect(rt, func(sc *SignalContext) { sc.Observe(cell) }, KindDefault)
	rt.Update()
	assert.False(t, cell.sinks.isEmpty())

	sub.Unsubscribe()
	assert.True(t, cell.sinks.isEmpty())

	// a second unsubscribe is a no-op
	sub.Unsubscribe()
}

func TestEffectWhileDetachesItself(t *testing.T) {
	rt := NewRuntime()
	cell := NewStateCell(rt, 0)
	var log []int

	NewEffectWhile(rt, func(sc *SignalContext) bool {
		v := cell.Get(sc).(int)
		log = append(log, v)
		return v < 1
	}, KindDefault)
	rt.Update()

	cell.Set(1, rt.AC())
	rt.Update()

	cell.Set(2, rt.AC())
	rt.Update()

	assert.Equal(t, []int{0, 1}, log)
	assert.True(t, cell.sinks.isEmpty())
}

func TestEffectKindOrdering(t *testing.T) {
	rt := NewRuntime()
	cell := NewStateCell(rt, 0)
	var log []string

	NewEffect(rt, func(sc *SignalContext) {
		sc.Observe(cell)
		log = append(log, "user")
	}, KindDefault)
	NewEffect(rt, func(sc *SignalContext) {
		sc.Observe(cell)
		log = append(log, "render")
	}, KindRender)

	rt.Update()
	assert.Equal(t, []string{"render", "user"}, log)

	log = nil
	cell.Set(1, rt.AC())
	rt.Update()
	assert.Equal(t, []string{"render", "user"}, log)
}

func TestStreamNode(t *testing.T) {
	rt := NewRuntime()
	cell := NewStateCell(rt, 1)
	stream := NewStreamNode(rt, func(sc *SignalContext) any { return cell.Get(sc) })

	v, ok := stream.TryNext()
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = stream.TryNext()
	assert.False(t, ok)

	woken := false
	stream.SetWaker(func() { woken = true })

	cell.Set(2, rt.AC())
	assert.True(t, woken)

	v, ok = stream.TryNext()
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	stream.Close()
	assert.True(t, cell.sinks.isEmpty())
}
