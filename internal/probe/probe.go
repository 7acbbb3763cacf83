// Package probe shells out to platform utilities for the two facts the
// tracker needs per poll: the focused window's title and the user's idle
// time. Probes are synchronous; a non-zero exit or an empty title is an
// error and the caller treats it as fatal for the invocation.
package probe

import (
	"context"
	"fmt"
	"runtime"
	"time"
)

// Prober reads the focused window title and the user's idle time.
type Prober interface {
	WindowTitle(ctx context.Context) (string, error)
	Idle(ctx context.Context) (time.Duration, error)
}

// New returns the Prober for the current platform.
func New() (Prober, error) {
	switch runtime.GOOS {
	case "linux":
		return x11Prober{}, nil
	case "darwin":
		return macProber{}, nil
	default:
		return nil, fmt.Errorf("no window probe for %s", runtime.GOOS)
	}
}
