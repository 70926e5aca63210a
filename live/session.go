package live

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"goxa/bridge"
)

// SessionState tracks handle acquisition. Ready and Failed are terminal.
type SessionState int

const (
	NotRequested SessionState = iota
	Requested
	Ready
	Failed
)

func (s SessionState) String() string {
	switch s {
	case NotRequested:
		return "not-requested"
	case Requested:
		return "requested"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Session owns handle acquisition for one application instance. Acquisition
// is a single bounded wait: the launcher runs until it reports readiness or
// the caller's context expires, never an unbounded poll. Once Ready, the
// handle is cached for the session's lifetime; once Failed, the error is.
type Session struct {
	// ID identifies the session in logs.
	ID string

	bundleID string
	launcher bridge.Launcher
	logger   *slog.Logger

	mu     sync.Mutex
	state  SessionState
	handle bridge.RemoteHandle
	err    error
}

// NewSession prepares (but does not start) acquisition of bundleID's handle.
func NewSession(launcher bridge.Launcher, bundleID string, logger *slog.Logger) *Session {
	return &Session{
		ID:       uuid.NewString(),
		bundleID: bundleID,
		launcher: launcher,
		logger:   logger,
	}
}

// State reports the current acquisition state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Acquire launches or attaches to the application and blocks until the
// handle is ready, the launcher fails, or ctx is done. A context deadline
// surfaces as *bridge.LaunchTimeoutError, launcher failures as
// *bridge.LaunchFailedError (or the launcher's own typed error). Terminal
// states are sticky: repeated calls return the cached handle or error.
func (s *Session) Acquire(ctx context.Context) (bridge.RemoteHandle, error) {
	s.mu.Lock()
	switch s.state {
	case Ready:
		s.mu.Unlock()
		return s.handle, nil
	case Failed:
		s.mu.Unlock()
		return nil, s.err
	case Requested:
		s.mu.Unlock()
		return nil, fmt.Errorf("session %s: acquisition already in progress", s.ID)
	}
	s.state = Requested
	s.mu.Unlock()

	s.logger.Debug("acquiring application handle", "session", s.ID, "bundle", s.bundleID)
	start := time.Now()

	type result struct {
		handle bridge.RemoteHandle
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		h, err := s.launcher.LaunchOrAttach(ctx, s.bundleID)
		ch <- result{handle: h, err: err}
	}()

	select {
	case <-ctx.Done():
		err := ctx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = &bridge.LaunchTimeoutError{BundleID: s.bundleID, Waited: time.Since(start).Round(time.Millisecond)}
		}
		return nil, s.fail(err)
	case res := <-ch:
		if res.err != nil {
			return nil, s.fail(wrapLaunchErr(s.bundleID, res.err))
		}
		s.mu.Lock()
		s.state = Ready
		s.handle = res.handle
		s.mu.Unlock()
		s.logger.Info("application handle ready", "session", s.ID, "bundle", s.bundleID, "took", time.Since(start).Round(time.Millisecond))
		return res.handle, nil
	}
}

func (s *Session) fail(err error) error {
	s.mu.Lock()
	s.state = Failed
	s.err = err
	s.mu.Unlock()
	s.logger.Warn("application handle acquisition failed", "session", s.ID, "bundle", s.bundleID, "error", err)
	return err
}

// wrapLaunchErr keeps typed bridge errors intact and wraps everything else
// as a launch failure.
func wrapLaunchErr(bundleID string, err error) error {
	var notFound *bridge.ApplicationNotFoundError
	var timeout *bridge.LaunchTimeoutError
	if errors.As(err, &notFound) || errors.As(err, &timeout) {
		return err
	}
	return &bridge.LaunchFailedError{BundleID: bundleID, Err: err}
}
