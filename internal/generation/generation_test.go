package generation

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	var tr Tracker

	a := tr.Next()
	b := tr.Next()

	assert.False(t, tr.IsCurrent(a))
	assert.True(t, tr.IsCurrent(b))

	applied := ""
	assert.True(t, tr.Apply(b, func() { applied = "B" }))
	assert.False(t, tr.Apply(a, func() { applied = "A" }))
	assert.Equal(t, "B", applied)

	tr.Invalidate()
	assert.False(t, tr.IsCurrent(b))
}

func TestTracker_Concurrent(t *testing.T) {
	var tr Tracker
	var wg sync.WaitGroup
	tokens := make(chan Token, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tokens <- tr.Next()
		}()
	}
	wg.Wait()
	close(tokens)

	seen := make(map[Token]bool)
	current := 0
	for tok := range tokens {
		assert.False(t, seen[tok], "duplicate token %d", tok)
		seen[tok] = true
		if tr.IsCurrent(tok) {
			current++
		}
	}
	assert.Equal(t, 1, current)
}

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls int32
	var last atomic.Value
	dropped := 0
	for _, q := range []string{"p", "pa", "pad", "padel"} {
		q := q
		if d.Call(func() {
			atomic.AddInt32(&calls, 1)
			last.Store(q)
		}) {
			dropped++
		}
	}
	assert.Equal(t, 3, dropped)

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "padel", last.Load())
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	var calls int32
	d.Call(func() { atomic.AddInt32(&calls, 1) })
	assert.True(t, d.Stop())
	assert.False(t, d.Stop())

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}
