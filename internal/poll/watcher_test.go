package poll

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fieldday-games/bingohunt/internal/model"
	"github.com/fieldday-games/bingohunt/internal/testutil"
)

// scriptedSource replays a fixed sequence of reads, repeating the last one
type scriptedSource struct {
	mu    sync.Mutex
	reads []func() (*model.GameStatus, error)
	calls int
}

func active() (*model.GameStatus, error)   { return &model.GameStatus{Active: true}, nil }
func inactive() (*model.GameStatus, error) { return &model.GameStatus{Active: false}, nil }
func failing() (*model.GameStatus, error)  { return nil, errors.New("connection refused") }

func (s *scriptedSource) GetGameState(context.Context) (*model.GameStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	read := s.reads[len(s.reads)-1]
	if s.calls < len(s.reads) {
		read = s.reads[s.calls]
	}
	s.calls++
	return read()
}

func (s *scriptedSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestEdgeDetectorExactlyOnce(t *testing.T) {
	d := NewEdgeDetector(false)

	edges := 0
	for _, active := range []bool{true, true, false, false} {
		if d.Observe(active) {
			edges++
		}
	}
	assert.Equal(t, 1, edges)
}

func TestEdgeDetectorIgnoresLoneInactive(t *testing.T) {
	d := NewEdgeDetector(false)
	assert.False(t, d.Observe(false))
	assert.False(t, d.Observe(false))

	// A later confirmed active state re-arms detection
	assert.False(t, d.Observe(true))
	assert.True(t, d.Observe(false))
}

func TestEdgeDetectorSeededActive(t *testing.T) {
	d := NewEdgeDetector(true)
	assert.True(t, d.Observe(false))
	assert.False(t, d.Observe(false))
}

func TestEdgeDetectorNeverFiresWhileActive(t *testing.T) {
	d := NewEdgeDetector(true)
	for i := 0; i < 10; i++ {
		assert.False(t, d.Observe(true))
	}
}

func TestWatcherReportsEnd(t *testing.T) {
	source := &scriptedSource{reads: []func() (*model.GameStatus, error){
		active, active, inactive,
	}}

	w := NewWatcher(source, time.Millisecond, false, testutil.NopLogger())
	w.Start(context.Background())
	defer w.Stop()

	select {
	case <-w.Ended():
	case <-time.After(time.Second):
		t.Fatal("watcher never reported game end")
	}
}

func TestWatcherSurvivesPollErrors(t *testing.T) {
	source := &scriptedSource{reads: []func() (*model.GameStatus, error){
		active, failing, failing, inactive,
	}}

	w := NewWatcher(source, time.Millisecond, false, testutil.NopLogger())
	w.Start(context.Background())
	defer w.Stop()

	select {
	case <-w.Ended():
	case <-time.After(time.Second):
		t.Fatal("watcher never reported game end")
	}
	assert.GreaterOrEqual(t, source.callCount(), 4)
}

func TestWatcherStopHaltsPolling(t *testing.T) {
	source := &scriptedSource{reads: []func() (*model.GameStatus, error){active}}

	w := NewWatcher(source, time.Millisecond, false, testutil.NopLogger())
	w.Start(context.Background())
	w.Stop()

	calls := source.callCount()
	time.Sleep(20 * time.Millisecond)
	assert.LessOrEqual(t, source.callCount(), calls+1)

	select {
	case <-w.Ended():
		t.Fatal("stopped watcher must not report an end")
	default:
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w := NewWatcher(&scriptedSource{reads: []func() (*model.GameStatus, error){active}},
		time.Millisecond, false, testutil.NopLogger())

	// Stop before start, twice after
	w.Stop()
	w.Start(context.Background())
	w.Stop()
	w.Stop()
}

func TestWatcherStartAfterStopIsNoop(t *testing.T) {
	source := &scriptedSource{reads: []func() (*model.GameStatus, error){active}}
	w := NewWatcher(source, time.Millisecond, false, testutil.NopLogger())
	w.Stop()
	w.Start(context.Background())

	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, source.callCount())
}
