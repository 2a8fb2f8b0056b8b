package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	cl "tycoon/internal/cli"
	"tycoon/internal/sim"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const (
	watchPollEvery  = 2 * time.Second
	watchMaxEvents  = 10
	watchReqTimeout = 10 * time.Second
)

var (
	watchTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	watchLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(13)
	watchGoodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	watchWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	watchBadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	watchBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	watchHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newWatchCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard polling the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			sp := spinner.New()
			sp.Spinner = spinner.Dot
			model := watchModel{
				client: newClient(apiBase),
				spin:   sp,
			}
			_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}

type watchModel struct {
	client    *cl.Client
	spin      spinner.Model
	status    sim.StatusView
	events    []sim.Event
	loaded    bool
	advancing bool
	err       error
}

type pollMsg struct{}

type statusMsg struct {
	status sim.StatusView
}

type reportsMsg struct {
	reports []sim.DayReport
}

type watchErrMsg struct {
	err error
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, fetchStatus(m.client), schedulePoll())
}

func schedulePoll() tea.Cmd {
	return tea.Tick(watchPollEvery, func(time.Time) tea.Msg { return pollMsg{} })
}

func fetchStatus(client *cl.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), watchReqTimeout)
		defer cancel()
		raw, err := client.Status(ctx)
		if err != nil {
			return watchErrMsg{err: err}
		}
		status, err := decodeInto[sim.StatusView](raw)
		if err != nil {
			return watchErrMsg{err: err}
		}
		return statusMsg{status: status}
	}
}

func advanceOnce(client *cl.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), watchReqTimeout)
		defer cancel()
		raw, err := client.Advance(ctx, 1)
		if err != nil {
			return watchErrMsg{err: err}
		}
		out, err := decodeInto[reportsPayload](raw)
		if err != nil {
			return watchErrMsg{err: err}
		}
		return reportsMsg{reports: out.Reports}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "a":
			if m.advancing {
				return m, nil
			}
			m.advancing = true
			return m, advanceOnce(m.client)
		}
		return m, nil
	case pollMsg:
		return m, tea.Batch(fetchStatus(m.client), schedulePoll())
	case statusMsg:
		m.status = msg.status
		m.loaded = true
		m.err = nil
		return m, nil
	case reportsMsg:
		m.advancing = false
		for _, r := range msg.reports {
			m.events = append(m.events, r.Events...)
		}
		if len(m.events) > watchMaxEvents {
			m.events = m.events[len(m.events)-watchMaxEvents:]
		}
		return m, fetchStatus(m.client)
	case watchErrMsg:
		m.advancing = false
		m.err = msg.err
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	if !m.loaded {
		return fmt.Sprintf("\n  %s connecting...\n", m.spin.View())
	}

	st := m.status
	var b strings.Builder

	title := st.Name
	if st.Paused {
		title += "  " + watchWarnStyle.Render("[paused]")
	}
	b.WriteString(watchTitleStyle.Render(title) + "\n")
	b.WriteString(watchLabelStyle.Render("Date") +
		fmt.Sprintf("day %d, week %d, month %d, year %d\n", st.Day, st.Week, st.Month, st.Year))

	money := formatMicros(st.MoneyMicros) + " cr"
	if st.MoneyMicros < 0 {
		money = watchBadStyle.Render(money)
	} else {
		money = watchGoodStyle.Render(money)
	}
	b.WriteString(watchLabelStyle.Render("Money") + money + "\n")
	b.WriteString(watchLabelStyle.Render("Reputation") + fmt.Sprintf("%.1f\n", st.Reputation))
	b.WriteString(watchLabelStyle.Render("Fans") + comma(st.Fans) + "\n")
	b.WriteString(watchLabelStyle.Render("Headcount") + fmt.Sprintf("%d\n", st.Headcount))
	b.WriteString(watchLabelStyle.Render("Equity sold") + fmt.Sprintf("%.1f%%\n", st.InvestorEquity))

	if st.GameOver {
		b.WriteString("\n" + watchBadStyle.Render("GAME OVER: "+st.GameOverReason) + "\n")
	}

	if len(m.events) > 0 {
		b.WriteString("\n" + watchTitleStyle.Render("Recent events") + "\n")
		for _, ev := range m.events {
			line := "- " + ev.Message
			switch ev.Severity {
			case sim.SeverityDanger:
				line = watchBadStyle.Render(line)
			case sim.SeverityWarning:
				line = watchWarnStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n" + watchBadStyle.Render("error: "+m.err.Error()) + "\n")
	}

	footer := "space: advance a day  q: quit"
	if m.advancing {
		footer = m.spin.View() + " advancing..."
	}
	return watchBoxStyle.Render(b.String()) + "\n" + watchHelpStyle.Render(footer) + "\n"
}
