// Package bridge defines the contracts between the binding generator and the
// remote scripting transport: an opaque handle onto one object inside a
// running application, a launcher that acquires the root handle, and the
// bundle discovery that maps a human-readable application name to an
// installed bundle and its dictionary resource.
//
// The transport itself (how property reads, element listings, and command
// invocations reach the application) lives behind these interfaces; see
// package bridgeclient for the TCP agent implementation.
package bridge

import "context"

// RemoteHandle is an opaque reference to one object inside the external
// application. All operations take a context; the transport is expected to
// honor cancellation and deadlines.
type RemoteHandle interface {
	// Property reads one property of the referenced object.
	Property(ctx context.Context, name string) (any, error)

	// Elements lists the contained elements for the given (pluralized)
	// element name, one handle per element, in application order.
	Elements(ctx context.Context, name string) ([]RemoteHandle, error)

	// ElementsProperty reads one property across every contained element in
	// a single round trip, returning per-element values in element order.
	// This is the fast-enumeration primitive collection accessors rely on.
	ElementsProperty(ctx context.Context, element, property string) ([]any, error)

	// Invoke runs a command on the referenced object. The direct parameter
	// is positional and may be nil; named parameters are forwarded by
	// keyword.
	Invoke(ctx context.Context, command string, direct any, named map[string]any) (any, error)
}

// Launcher acquires the root handle for one application, launching it when
// it is not already running. Implementations must block until the
// application reports readiness or the context is done; unbounded polling
// belongs behind this interface, never in front of it.
type Launcher interface {
	LaunchOrAttach(ctx context.Context, bundleID string) (RemoteHandle, error)
}

// Bundle describes one installed application bundle.
type Bundle struct {
	// Name is the bundle's display name, e.g. "Keynote".
	Name string
	// ID is the bundle identifier, e.g. "com.apple.iWork.Keynote".
	ID string
	// Path is the bundle directory on disk.
	Path string
	// SdefPath is the scripting-dictionary resource inside the bundle;
	// empty when the application is not scriptable.
	SdefPath string
}
