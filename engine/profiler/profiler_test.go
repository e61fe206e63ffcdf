package profiler

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTickReportsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(
		WithInterval(time.Second),
		WithClock(clock.now),
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
	)

	for i := range 49 {
		clock.advance(20 * time.Millisecond)
		if p.Tick(time.Millisecond) {
			t.Fatalf("Tick() reported early at tick %d", i)
		}
	}
	clock.advance(20 * time.Millisecond)
	if !p.Tick(4 * time.Millisecond) {
		t.Fatal("Tick() = false after a full interval")
	}

	out := buf.String()
	for _, want := range []string{"msg=profiler", "tps=50", "tick_max=4ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	buf.Reset()
	clock.advance(10 * time.Millisecond)
	if p.Tick(time.Millisecond) {
		t.Error("Tick() reported again right after a report")
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestTickWithFrozenClockNeverReports(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	p := NewProfiler(WithInterval(0), WithClock(clock.now), WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	for range 10 {
		if p.Tick(time.Millisecond) {
			t.Fatal("Tick() reported with zero elapsed time")
		}
	}
}
