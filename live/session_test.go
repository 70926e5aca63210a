package live_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goxa/bridge"
	"goxa/live"
)

type fakeLauncher struct {
	handle bridge.RemoteHandle
	err    error
	delay  time.Duration
	calls  int
}

func (l *fakeLauncher) LaunchOrAttach(ctx context.Context, bundleID string) (bridge.RemoteHandle, error) {
	l.calls++
	if l.delay > 0 {
		select {
		case <-time.After(l.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return l.handle, l.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSessionAcquire(t *testing.T) {
	h := &fakeHandle{}
	l := &fakeLauncher{handle: h}
	s := live.NewSession(l, "com.apple.Pages", discardLogger())
	assert.Equal(t, live.NotRequested, s.State())

	got, err := s.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, bridge.RemoteHandle(h), got)
	assert.Equal(t, live.Ready, s.State())

	again, err := s.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, got, again)
	assert.Equal(t, 1, l.calls, "ready sessions reuse the cached handle")
}

func TestSessionAcquireFailure(t *testing.T) {
	l := &fakeLauncher{err: errors.New("agent unreachable")}
	s := live.NewSession(l, "com.apple.Pages", discardLogger())

	_, err := s.Acquire(context.Background())
	require.Error(t, err)
	var lf *bridge.LaunchFailedError
	require.ErrorAs(t, err, &lf)
	assert.Equal(t, "com.apple.Pages", lf.BundleID)
	assert.Equal(t, live.Failed, s.State())

	_, again := s.Acquire(context.Background())
	assert.Same(t, err.(*bridge.LaunchFailedError), again.(*bridge.LaunchFailedError), "failures are sticky")
	assert.Equal(t, 1, l.calls)
}

func TestSessionAcquireKeepsTypedErrors(t *testing.T) {
	l := &fakeLauncher{err: &bridge.ApplicationNotFoundError{Name: "Nonexistent"}}
	s := live.NewSession(l, "com.example.nope", discardLogger())

	_, err := s.Acquire(context.Background())
	var nf *bridge.ApplicationNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Nonexistent", nf.Name)
}

func TestSessionAcquireTimeout(t *testing.T) {
	l := &fakeLauncher{handle: &fakeHandle{}, delay: time.Second}
	s := live.NewSession(l, "com.apple.Pages", discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.Acquire(ctx)
	require.Error(t, err)
	var to *bridge.LaunchTimeoutError
	require.ErrorAs(t, err, &to)
	assert.Equal(t, "com.apple.Pages", to.BundleID)
	assert.Equal(t, live.Failed, s.State())
}

func TestSessionStateString(t *testing.T) {
	assert.Equal(t, "not-requested", live.NotRequested.String())
	assert.Equal(t, "requested", live.Requested.String())
	assert.Equal(t, "ready", live.Ready.String())
	assert.Equal(t, "failed", live.Failed.String())
}
