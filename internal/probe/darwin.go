package probe

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// macProber reads the focused title via osascript and idle time by parsing
// HIDIdleTime (nanoseconds since last input) out of ioreg.
type macProber struct{}

const frontWindowScript = `tell application "System Events" to tell (first process whose frontmost is true) to get name of front window`

var hidIdleRe = regexp.MustCompile(`HIDIdleTime"\s*=\s*([0-9]+)`)

func (macProber) WindowTitle(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "osascript", "-e", frontWindowScript).Output()
	if err != nil {
		return "", fmt.Errorf("query front window: %w", err)
	}

	title := strings.TrimSpace(string(out))
	if title == "" {
		return "", fmt.Errorf("front window probe returned no title")
	}
	return title, nil
}

func (macProber) Idle(ctx context.Context) (time.Duration, error) {
	out, err := exec.CommandContext(ctx, "/usr/sbin/ioreg", "-c", "IOHIDSystem").Output()
	if err != nil {
		return 0, fmt.Errorf("query idle time: %w", err)
	}

	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "HIDIdleTime") {
			continue
		}
		if m := hidIdleRe.FindStringSubmatch(line); len(m) == 2 {
			ns, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				return 0, fmt.Errorf("parse HIDIdleTime: %w", err)
			}
			return time.Duration(ns), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}

	return 0, fmt.Errorf("HIDIdleTime not found in ioreg output")
}
