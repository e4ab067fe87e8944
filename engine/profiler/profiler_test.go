package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func TestTickReportsWindow(t *testing.T) {
	var out bytes.Buffer
	clock := &fakeClock{t: time.Unix(100, 0)}
	p := NewProfiler(
		WithInterval(time.Second),
		WithClock(clock.now),
		WithLogger(slog.New(slog.NewTextHandler(&out, nil))),
	)

	p.RecordUpload(1024 * 1024)
	p.RecordUpload(1024 * 1024)
	for range 59 {
		_, logged := p.Tick()
		assert.False(t, logged)
	}

	clock.t = clock.t.Add(2 * time.Second)
	s, logged := p.Tick()
	assert.True(t, logged)
	assert.InDelta(t, 30.0, s.FPS, 1e-9)
	assert.Equal(t, 2, s.Uploads)
	assert.InDelta(t, 2.0, s.UploadMB, 1e-9)
	assert.InDelta(t, 1.0, s.UploadRateMB, 1e-9)
	assert.Contains(t, out.String(), "msg=profiler")
	assert.Contains(t, out.String(), "uploads=2")
}

func TestTickResetsWindow(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clock.now), WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	p.RecordUpload(10)

	clock.t = clock.t.Add(time.Second)
	_, logged := p.Tick()
	assert.True(t, logged)

	clock.t = clock.t.Add(time.Second)
	s, logged := p.Tick()
	assert.True(t, logged)
	assert.Equal(t, 0, s.Uploads)
	assert.InDelta(t, 1.0, s.FPS, 1e-9)
}
