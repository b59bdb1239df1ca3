package profiler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestProfiler() (*Profiler, *clock) {
	c := &clock{t: time.Unix(0, 0)}
	p := New()
	p.now = c.now
	return p, c
}

func TestScopesAggregatePerFrame(t *testing.T) {
	p, c := newTestProfiler()

	for i := 0; i < 3; i++ {
		end := p.Start("update")
		c.advance(2 * time.Millisecond)
		end()
	}
	end := p.Start("render")
	c.advance(5 * time.Millisecond)
	end()

	assert.Empty(t, p.Snapshot(), "nothing is published before the frame ends")
	p.EndFrame()

	got := p.Snapshot()
	require.Len(t, got, 2)
	assert.Equal(t, Scope{Name: "render", Last: 5 * time.Millisecond, Avg: 5 * time.Millisecond, Calls: 1}, got[0])
	assert.Equal(t, Scope{Name: "update", Last: 6 * time.Millisecond, Avg: 6 * time.Millisecond, Calls: 3}, got[1])
	assert.Equal(t, uint64(1), p.Frames())
}

func TestUnseenScopeDecays(t *testing.T) {
	p, c := newTestProfiler()

	end := p.Start("load")
	c.advance(10 * time.Millisecond)
	end()
	p.EndFrame()
	p.EndFrame()

	got := p.Snapshot()
	require.Len(t, got, 1)
	assert.Zero(t, got[0].Last)
	assert.Zero(t, got[0].Calls)
	assert.Equal(t, 9*time.Millisecond, got[0].Avg)
	assert.Equal(t, uint64(2), p.Frames())
}

func TestAverageMovesTowardsLast(t *testing.T) {
	p, c := newTestProfiler()

	frame := func(d time.Duration) {
		end := p.Start("draw")
		c.advance(d)
		end()
		p.EndFrame()
	}
	frame(10 * time.Millisecond)
	frame(20 * time.Millisecond)

	s := p.Snapshot()[0]
	assert.Equal(t, 20*time.Millisecond, s.Last)
	assert.Equal(t, 11*time.Millisecond, s.Avg)
}

func TestStartIsSafeAcrossGoroutines(t *testing.T) {
	p := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p.Start("work")()
			}
		}()
	}
	wg.Wait()
	p.EndFrame()

	s := p.Snapshot()
	require.Len(t, s, 1)
	assert.Equal(t, 800, s[0].Calls)
}

func TestRuntimeCounters(t *testing.T) {
	assert.Positive(t, MemoryUsage())
	assert.Positive(t, MemoryAllocs())
	assert.GreaterOrEqual(t, NumGoroutine(), 1)
	assert.GreaterOrEqual(t, NumCPU(), 1)
}
