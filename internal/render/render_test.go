package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0m"},
		{29 * time.Second, "0m"},
		{5 * time.Minute, "5m"},
		{59 * time.Minute, "59m"},
		{time.Hour, "1h 00m"},
		{2*time.Hour + 5*time.Minute, "2h 05m"},
		{14*time.Minute + 50*time.Second, "15m"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Duration(tc.in), tc.in.String())
	}
}

func TestTable_AlignsColumns(t *testing.T) {
	out := Table(
		[]string{"ID", "Title"},
		[][]string{
			{"1", "short"},
			{"2", "a much longer title"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "Title")
	assert.Contains(t, lines[1], "─")
	assert.Contains(t, lines[2], "short")
	assert.Contains(t, lines[3], "a much longer title")

	// Both data rows start their second column at the same offset.
	assert.Equal(t, strings.Index(lines[2], "short"), strings.Index(lines[3], "a much"))
}

func TestTable_NoRows(t *testing.T) {
	out := Table([]string{"ID", "Title"}, nil)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)
}
