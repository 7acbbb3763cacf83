package probe

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// x11Prober reads the focused title via xdotool and idle time via xprintidle.
type x11Prober struct{}

func (x11Prober) WindowTitle(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "xdotool", "getactivewindow", "getwindowname").Output()
	if err != nil {
		return "", fmt.Errorf("query active window: %w", err)
	}

	title := strings.TrimSpace(string(out))
	if title == "" {
		return "", fmt.Errorf("active window probe returned no title")
	}
	return title, nil
}

func (x11Prober) Idle(ctx context.Context) (time.Duration, error) {
	out, err := exec.CommandContext(ctx, "xprintidle").Output()
	if err != nil {
		return 0, fmt.Errorf("query idle time: %w", err)
	}

	// xprintidle reports milliseconds since the last input event.
	ms, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle time: %w", err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
