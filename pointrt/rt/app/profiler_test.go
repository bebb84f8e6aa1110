package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfiler_ScopesKeepInsertionOrder(t *testing.T) {
	p := NewProfiler()
	clock := time.Unix(0, 0)
	p.now = func() time.Time { return clock }

	p.BeginScope("generate")
	clock = clock.Add(3 * time.Millisecond)
	p.EndScope("generate")

	p.BeginScope("upload")
	clock = clock.Add(time.Millisecond)
	p.EndScope("upload")

	p.BeginScope("generate")
	p.EndScope("generate")

	assert.Equal(t, []string{"generate", "upload"}, p.Order)
	assert.Equal(t, time.Duration(0), p.Scopes["generate"])
	assert.Equal(t, time.Millisecond, p.Scopes["upload"])

	p.SetCount("particles", 100000)
	out := p.GetStatsString()
	assert.Contains(t, out, "upload")
	assert.Contains(t, out, "1.00 ms")
	assert.Contains(t, out, "100000")
}

func TestFrameStats_AveragesOverOneSecond(t *testing.T) {
	var s FrameStats

	now := 10.0
	s.Tick(now)
	for i := 0; i < 61; i++ {
		now += 1.0 / 60.0
		s.Tick(now)
	}

	assert.InDelta(t, 60, s.FPS, 0.5)
	assert.InDelta(t, 16.67, s.FrameMs, 0.1)
}

func TestFrameStats_NoValueBeforeFirstWindow(t *testing.T) {
	var s FrameStats
	s.Tick(1)
	s.Tick(1.5)

	assert.Zero(t, s.FPS)
	assert.Zero(t, s.FrameMs)
}
