// Package scan wraps a code-decoding capability. A session produces at most
// one decoded string per activation and must be explicitly stopped; stopping
// when nothing is running is a no-op.
package scan

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrUnavailable indicates the decoding device could not be opened.
// It is distinct from decode failures, which never surface.
var ErrUnavailable = errors.New("scan capability unavailable")

// Capability is a startable/stoppable decode session source
type Capability interface {
	// Start begins a decode session. onDecode is invoked at most once with
	// the decoded text; decodes after Stop are discarded. Start returns
	// ErrUnavailable if the device cannot be opened.
	Start(ctx context.Context, onDecode func(code string)) error

	// Stop ends the session. Safe to call repeatedly or when idle.
	Stop()
}

// LineReader supplies decoded codes as lines of text
type LineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

// LineSource is a Capability that treats each read line as one decoded code.
// It stands in for a camera decoder when codes are entered or piped directly.
type LineSource struct {
	reader LineReader

	mu      sync.Mutex
	cancel  context.CancelFunc
	decoded bool
}

var _ Capability = (*LineSource)(nil)

// NewLineSource creates a capability backed by the given reader
func NewLineSource(reader LineReader) *LineSource {
	return &LineSource{reader: reader}
}

func (s *LineSource) Start(ctx context.Context, onDecode func(code string)) error {
	if s.reader == nil {
		return ErrUnavailable
	}

	s.mu.Lock()
	if s.cancel != nil {
		// Previous session still active; the router stops sessions before
		// starting new ones, so treat this as a device conflict.
		s.mu.Unlock()
		return ErrUnavailable
	}
	sessionCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.decoded = false
	s.mu.Unlock()

	go func() {
		line, err := s.reader.ReadLine(sessionCtx)
		if err != nil {
			return
		}

		s.mu.Lock()
		// Only the first decode of an active session is acted upon
		if s.decoded || s.cancel == nil || sessionCtx.Err() != nil {
			s.mu.Unlock()
			return
		}
		s.decoded = true
		s.mu.Unlock()

		onDecode(strings.TrimSpace(line))
	}()

	return nil
}

func (s *LineSource) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
