package app

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Profiler records CPU time per named scope and free-form counters.
type Profiler struct {
	Scopes     map[string]time.Duration
	StartTimes map[string]time.Time
	Counts     map[string]int
	Order      []string

	now func() time.Time
}

func NewProfiler() *Profiler {
	return &Profiler{
		Scopes:     make(map[string]time.Duration),
		StartTimes: make(map[string]time.Time),
		Counts:     make(map[string]int),
		Order:      make([]string, 0),
		now:        time.Now,
	}
}

func (p *Profiler) BeginScope(name string) {
	p.StartTimes[name] = p.now()
	for _, n := range p.Order {
		if n == name {
			return
		}
	}
	p.Order = append(p.Order, name)
}

func (p *Profiler) EndScope(name string) {
	if start, ok := p.StartTimes[name]; ok {
		p.Scopes[name] = p.now().Sub(start)
	}
}

func (p *Profiler) SetCount(name string, count int) {
	p.Counts[name] = count
}

func (p *Profiler) Reset() {
	for k := range p.Scopes {
		p.Scopes[k] = 0
	}
}

func (p *Profiler) GetStatsString() string {
	var sb strings.Builder

	sb.WriteString("Timings (CPU):\n")
	for _, name := range p.Order {
		ms := float64(p.Scopes[name].Microseconds()) / 1000.0
		sb.WriteString(fmt.Sprintf("  %-12s: %.2f ms\n", name, ms))
	}

	if len(p.Counts) == 0 {
		return sb.String()
	}
	sb.WriteString("Stats:\n")
	keys := make([]string, 0, len(p.Counts))
	for k := range p.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("  %-12s: %d\n", k, p.Counts[k]))
	}

	return sb.String()
}

// FrameStats averages frame rate and frame time over one-second windows,
// like the fps and ms panels of stats.js.
type FrameStats struct {
	FPS     float64
	FrameMs float64

	last   float64
	frames int
	window float64
}

// Tick records a frame finished at now (seconds).
func (s *FrameStats) Tick(now float64) {
	if s.last > 0 {
		s.frames++
		s.window += now - s.last
		if s.window >= 1.0 {
			s.FPS = float64(s.frames) / s.window
			s.FrameMs = s.window * 1000 / float64(s.frames)
			s.frames = 0
			s.window = 0
		}
	}
	s.last = now
}
