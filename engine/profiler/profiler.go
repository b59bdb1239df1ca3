// Package profiler collects named scope timings per frame and exposes a few
// runtime counters for the debug panels.
package profiler

import (
	"runtime"
	"sort"
	"sync"
	"time"
)

// Scope is the timing summary of one named scope.
type Scope struct {
	Name  string
	Last  time.Duration // total time spent in the scope during the last frame
	Avg   time.Duration // exponential moving average of Last
	Calls int           // calls during the last frame
}

// Profiler accumulates scope durations for the frame in progress. EndFrame
// publishes them.
type Profiler struct {
	mu      sync.Mutex
	now     func() time.Time
	current map[string]*acc
	scopes  map[string]*Scope
	smooth  float64
	frames  uint64
}

type acc struct {
	total time.Duration
	calls int
}

func New() *Profiler {
	return &Profiler{
		now:     time.Now,
		current: map[string]*acc{},
		scopes:  map[string]*Scope{},
		smooth:  0.1,
	}
}

// std is the process-wide profiler behind Start, EndFrame and Snapshot.
var std = New()

func Start(name string) func() { return std.Start(name) }
func EndFrame()                { std.EndFrame() }
func Snapshot() []Scope        { return std.Snapshot() }

// Start begins a scope and returns the func that ends it.
func (p *Profiler) Start(name string) func() {
	begin := p.now()
	return func() {
		d := p.now().Sub(begin)
		p.mu.Lock()
		a, ok := p.current[name]
		if !ok {
			a = &acc{}
			p.current[name] = a
		}
		a.total += d
		a.calls++
		p.mu.Unlock()
	}
}

// EndFrame closes the frame: scopes seen this frame update their summary,
// scopes not seen report zero for Last.
func (p *Profiler) EndFrame() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for name, s := range p.scopes {
		if _, ok := p.current[name]; !ok {
			s.Last, s.Calls = 0, 0
			s.Avg = p.blend(s.Avg, 0)
		}
	}
	for name, a := range p.current {
		s, ok := p.scopes[name]
		if !ok {
			s = &Scope{Name: name, Avg: a.total}
			p.scopes[name] = s
		}
		s.Last, s.Calls = a.total, a.calls
		s.Avg = p.blend(s.Avg, a.total)
		delete(p.current, name)
	}
	p.frames++
}

func (p *Profiler) blend(avg, v time.Duration) time.Duration {
	return avg + time.Duration(float64(v-avg)*p.smooth)
}

// Snapshot returns the published scopes sorted by name.
func (p *Profiler) Snapshot() []Scope {
	p.mu.Lock()
	out := make([]Scope, 0, len(p.scopes))
	for _, s := range p.scopes {
		out = append(out, *s)
	}
	p.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (p *Profiler) Frames() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames
}

func MemoryUsage() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func MemoryAllocs() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Mallocs
}

func NumGoroutine() int { return runtime.NumGoroutine() }

func NumCPU() int { return runtime.NumCPU() }
