package bridge

import (
	"fmt"
	"time"
)

// ApplicationNotFoundError reports that bundle discovery found no installed
// application matching the requested name.
type ApplicationNotFoundError struct {
	Name string
}

func (e *ApplicationNotFoundError) Error() string {
	return fmt.Sprintf("application %q not found", e.Name)
}

// LaunchFailedError reports that the application was found but the
// launch-or-attach request failed.
type LaunchFailedError struct {
	BundleID string
	Err      error
}

func (e *LaunchFailedError) Error() string {
	return fmt.Sprintf("launch %s: %v", e.BundleID, e.Err)
}

func (e *LaunchFailedError) Unwrap() error { return e.Err }

// LaunchTimeoutError reports that handle acquisition did not complete within
// the caller's deadline.
type LaunchTimeoutError struct {
	BundleID string
	Waited   time.Duration
}

func (e *LaunchTimeoutError) Error() string {
	return fmt.Sprintf("launch %s: application did not become ready within %s", e.BundleID, e.Waited)
}
