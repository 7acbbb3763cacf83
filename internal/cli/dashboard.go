package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/runnerr0/punchclock/internal/render"
	"github.com/runnerr0/punchclock/internal/storage"
	"github.com/runnerr0/punchclock/internal/tracker"
)

var (
	dashHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	dashBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1).
			MarginBottom(1)

	dashActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	dashFooterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

type dashTickMsg time.Time

func dashTick() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg {
		return dashTickMsg(t)
	})
}

type dashboardModel struct {
	store  storage.Store
	width  int
	height int

	now     time.Time
	active  time.Duration
	punches []tracker.Punch
	totals  []tracker.GroupTotal
	err     error
}

// reload recomputes today's punches and the active streak from the store.
func (m *dashboardModel) reload() {
	ctx := context.Background()
	m.now = time.Now()
	day := time.Date(m.now.Year(), m.now.Month(), m.now.Day(), 0, 0, 0, 0, m.now.Location())

	entries, err := m.store.Scan(ctx, storage.ScanQuery{
		Since: day,
		Until: day.AddDate(0, 0, 1),
	})
	if err != nil {
		m.err = err
		return
	}

	punches, totals := tracker.Aggregate(entries)
	m.punches = tracker.ReportPunches(punches)
	m.totals = tracker.ReportTotals(totals)

	m.active, m.err = tracker.ActiveDuration(ctx, m.store, m.now.UTC())
}

func (m dashboardModel) Init() tea.Cmd {
	return dashTick()
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.reload()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case dashTickMsg:
		m.reload()
		return m, dashTick()
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.err != nil {
		return fmt.Sprintf("error: %v\n\nPress q to quit.", m.err)
	}

	header := dashHeaderStyle.Width(m.width).Render(
		"punchclock — " + m.now.Format("Mon Jan 2 15:04"),
	)

	streak := dashBoxStyle.Render(
		"Active streak\n\n" + dashActiveStyle.Render(render.Duration(m.active)),
	)

	var punchBody string
	if len(m.punches) == 0 {
		punchBody = "No punches yet today."
	} else {
		rows := make([][]string, 0, len(m.punches))
		for i := range m.punches {
			p := &m.punches[i]
			rows = append(rows, []string{
				p.Start.Local().Format("15:04"),
				p.Stop.Local().Format("15:04"),
				render.Duration(p.Duration()),
				p.Group,
			})
		}
		punchBody = render.Table([]string{"Start", "Stop", "Duration", "Activity"}, rows)
	}
	punchBox := dashBoxStyle.Render("Today's punches\n\n" + punchBody)

	var totalsBody string
	if len(m.totals) == 0 {
		totalsBody = "Nothing over the threshold yet."
	} else {
		var b strings.Builder
		for _, g := range m.totals {
			fmt.Fprintf(&b, "%-30s %s\n", g.Group, render.Duration(g.Dur))
		}
		totalsBody = strings.TrimRight(b.String(), "\n")
	}
	totalsBox := dashBoxStyle.Render("By group\n\n" + totalsBody)

	footer := dashFooterStyle.Width(m.width).Render(
		"q quit • r refresh • updates every 30 seconds",
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, streak, punchBox, totalsBox, footer)
}

// Execute implements the go-flags Commander interface for DashboardCommand.
func (c *DashboardCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	m := dashboardModel{store: store}
	m.reload()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
