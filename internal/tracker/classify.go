package tracker

import (
	"regexp"
	"strings"
)

// rule maps a title pattern to a normalized group label. Patterns are
// unanchored unless written otherwise and can overlap, so rule order decides
// the winner: the first matching rule is applied and no later rule runs.
type rule struct {
	pattern *regexp.Regexp
	label   func(m []string) string
}

func fixed(name string) func([]string) string {
	return func([]string) string { return name }
}

// rules is the single seam for application-specific grouping. Editor and
// terminal rules must precede the generic browser rule, which would otherwise
// swallow titles like "main.py - vim - Terminal - Google Chrome".
var rules = []rule{
	// Editors: "main.py - vim", "init.lua + nvim"
	{
		pattern: regexp.MustCompile(`(?i)^(.+?)\s*[-+]\s*g?n?vim$`),
		label:   func(m []string) string { return "Vim: " + m[1] },
	},
	{
		pattern: regexp.MustCompile(`(?i)^(.+?)\s+-\s+(?:GNU\s+)?Emacs`),
		label:   func(m []string) string { return "Emacs: " + m[1] },
	},
	// Shell prompts collapse onto the working directory: "user@host: ~/src/punchclock"
	{
		pattern: regexp.MustCompile(`^[\w.-]+@[\w.-]+:\s*(\S+)`),
		label:   func(m []string) string { return "Terminal: " + m[1] },
	},
	// Chat and call apps get fixed names regardless of channel or room.
	{pattern: regexp.MustCompile(`(?i)\bslack\b`), label: fixed("Slack")},
	{pattern: regexp.MustCompile(`(?i)\bdiscord\b`), label: fixed("Discord")},
	{pattern: regexp.MustCompile(`(?i)\bzoom meeting\b`), label: fixed("Zoom")},
	// Browsers: keep the leading segment as the site/tab group.
	// "YouTube - video - Chrome" -> "Web: YouTube"
	{
		pattern: regexp.MustCompile(`^(.+)\s[-—]\s(?:Google Chrome|Chromium|Mozilla Firefox|Chrome|Firefox|Brave)$`),
		label: func(m []string) string {
			head := m[1]
			if i := strings.Index(head, " - "); i >= 0 {
				head = head[:i]
			}
			return "Web: " + head
		},
	},
}

// Classify maps a raw window title to its normalized group label. It is pure
// and total: with no matching rule the raw title is the group. Both the write
// path (track) and the read path (timecard, status) call it, so it must stay
// side-effect-free.
func Classify(title string) string {
	for _, r := range rules {
		if m := r.pattern.FindStringSubmatch(title); m != nil {
			return r.label(m)
		}
	}
	return title
}
