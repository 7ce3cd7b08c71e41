package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/comeback/internal/audio"
	"github.com/desertthunder/comeback/internal/formatter"
	"github.com/desertthunder/comeback/internal/models"
	"github.com/desertthunder/comeback/internal/tasks"
)

// bubbleWidth is the breathing guide's width at scale 1.
const bubbleWidth = 20

// View renders the header, the active tab and the help line.
func (m *Model) View() string {
	var body string
	switch m.view {
	case TodayView:
		body = m.renderToday()
	case CalmView:
		body = m.renderCalm()
	case MusicView:
		body = m.renderMusic()
	case AnalyticsView:
		body = m.renderAnalytics()
	case PhasesView:
		body = m.renderPhases()
	}

	var footer string
	switch {
	case m.err != nil:
		footer = styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	case m.status != "":
		footer = styles.warn.Render(m.status)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s", m.renderHeader(), body, footer, m.help.View(m.keys))
}

func (m *Model) renderHeader() string {
	tabs := make([]string, len(viewNames))
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if ViewState(i) == m.view {
			tabs[i] = styles.activeTab.Render(label)
		} else {
			tabs[i] = styles.tab.Render(label)
		}
	}
	quote := styles.help.Render(models.QuoteFor(m.now()))
	return lipgloss.JoinVertical(lipgloss.Left, lipgloss.JoinHorizontal(lipgloss.Top, tabs...), quote)
}

func (m *Model) renderToday() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(fmt.Sprintf("Today %s  %s %d%%", m.record.Day, formatter.Bar(m.record.Completion()), m.record.Completion())))
	b.WriteString("\n")

	row := 0
	line := func(label, value string) {
		prefix := "  "
		if row == m.cursor {
			prefix = styles.cursor.Render("> ")
		}
		fmt.Fprintf(&b, "%s%-28s %s\n", prefix, label, value)
		row++
	}
	check := func(done bool) string {
		if done {
			return styles.ok.Render("[x]")
		}
		return "[ ]"
	}

	line("Mood", fmt.Sprintf("‹ %s ›", m.record.Mood))
	line("Water", fmt.Sprintf("%d/%d glasses", m.record.Water, models.MaxWater))
	b.WriteString(styles.help.Render("  Meals"))
	b.WriteString("\n")
	for _, item := range models.MealItems {
		line(item, check(m.record.Meals.Has(item)))
	}
	b.WriteString(styles.help.Render("  Routine"))
	b.WriteString("\n")
	for _, item := range models.RoutineItems {
		line(item, check(m.record.Routine.Has(item)))
	}
	return b.String()
}

func (m *Model) renderCalm() string {
	s := m.calmState
	title := styles.title.Render("60 Second Calm")

	if !s.Running {
		hint := styles.help.Render("Press s to begin a one minute breathing session.")
		if s.Remaining > 0 && s.Remaining < audio.CalmSeconds {
			hint = styles.help.Render(fmt.Sprintf("Stopped with %ds left. Press s to start again.", s.Remaining))
		}
		return fmt.Sprintf("%s\n%s\n\n%s", title, breathingBubble(models.MinScale), hint)
	}

	fraction := float64(audio.CalmSeconds-s.Remaining) / audio.CalmSeconds
	return fmt.Sprintf(
		"%s\n%s\n\n%s  %s\n\n%s %ds",
		title,
		breathingBubble(s.Scale),
		styles.ok.Render(s.Phase),
		styles.help.Render(s.Cue),
		m.bar.ViewAs(fraction),
		s.Remaining,
	)
}

// breathingBubble draws the guide as a bar whose width follows scale.
func breathingBubble(scale float64) string {
	n := int(math.Round(scale * bubbleWidth))
	pad := int(math.Round(models.MaxScale*bubbleWidth)) - n
	return strings.Repeat(" ", max(pad, 0)/2) + styles.bubble.Render("("+strings.Repeat("●", max(n-2, 0))+")")
}

func (m *Model) renderMusic() string {
	state := "stopped"
	if m.synth.Playing() {
		state = styles.ok.Render(fmt.Sprintf("playing %s at %.0f Hz", m.synth.Mood(), m.synth.Frequency()))
	}
	volume := int(math.Round(m.synth.Volume() / audio.MaxSynthVolume * 100))
	info := fmt.Sprintf(
		"Synth: %s\nVolume: %s %d%%\nSuggestions for %s: %s",
		state,
		formatter.Bar(volume),
		volume,
		m.synth.Mood(),
		strings.Join(models.Playlist(m.synth.Mood()), ", "),
	)
	return fmt.Sprintf("%s\n\n%s", m.moodList.View(), info)
}

func (m *Model) renderAnalytics() string {
	title := styles.title.Render("Weekly Comeback")

	if m.loading {
		msg := "Loading history..."
		switch m.progress.Phase {
		case tasks.LoadSessions:
			msg = fmt.Sprintf("Loading calm sessions (%d/%d)", m.progress.Step, m.progress.Total)
		case tasks.Summarize:
			msg = "Summarizing..."
		}
		return fmt.Sprintf("%s\n%s", title, msg)
	}
	if m.report == nil {
		return fmt.Sprintf("%s\n%s", title, styles.help.Render("No history yet. Press r to refresh."))
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	for _, d := range m.report.Days {
		fmt.Fprintf(&b, "%s %s %s %3d%%\n", d.Weekday, d.Day, formatter.Bar(d.Completion), d.Completion)
	}
	fmt.Fprintf(&b, "\nAverage: %s\n", styles.ok.Render(fmt.Sprintf("%d%%", m.report.Average)))
	fmt.Fprintf(&b, "Calm sessions: %d (%ds)", m.report.CalmSessions, m.report.CalmSeconds)
	return b.String()
}

func (m *Model) renderPhases() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(m.phase.Title))
	b.WriteString("\n")
	b.WriteString(styles.help.Render(m.phase.Message))
	b.WriteString("\n")
	for _, bullet := range m.phase.Bullets {
		fmt.Fprintf(&b, "  • %s\n", bullet)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.phaseList.View(), "  ", b.String())
}
