package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/emberhabits/ember/internal/constants"
	"github.com/emberhabits/ember/internal/reminder"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateStats:
		content = m.viewStats()
	case StateOptions:
		content = m.viewOptions()
	case StateHabitForm, StateReminderForm:
		content = m.form.View()
	case StateConfirmArchive:
		content = m.viewConfirmArchive()
	case StateCelebrate:
		content = m.viewCelebration()
	}

	var errLine string
	if m.formError != "" {
		errLine = dangerStyle.Render("✗ " + m.formError)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		errLine,
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Stats", "Options"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Today, %s\n\n", m.log.Date))

	if len(m.habits) == 0 {
		b.WriteString(mutedStyle.Render("No habits yet. Press 'a' to add your first one."))
		return docStyle.Render(b.String())
	}

	for i, h := range m.habits {
		mark := "○"
		line := fmt.Sprintf("%s %s %s", mark, h.Emoji, h.Title)
		if m.log.Completed(h.ID) {
			line = doneStyle.Render(fmt.Sprintf("● %s %s", h.Emoji, h.Title))
		}
		if i == m.cursor {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	done := m.log.CompletedCount()
	if m.log.AllCompleted(m.habits) {
		b.WriteString(streakStyle.Render(fmt.Sprintf("All done! 🔥 %d-day streak", m.streak)))
	} else {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d of %d completed", done, len(m.habits))))
	}

	return docStyle.Render(b.String())
}

func (m Model) viewStats() string {
	var b strings.Builder

	switch m.streak {
	case 0:
		b.WriteString(mutedStyle.Render("No current streak.") + "\n\n")
	default:
		b.WriteString(streakStyle.Render(fmt.Sprintf("🔥 %d-day streak", m.streak)) + "\n\n")
	}

	b.WriteString(RenderHeatmap(m.weeks))
	return docStyle.Render(b.String())
}

func (m Model) viewOptions() string {
	var b strings.Builder

	rt := m.svc.ReminderTime()
	b.WriteString(fmt.Sprintf("Daily reminder: %s  (press 'r' to change)\n", rt.String()))

	switch m.svc.Planner.State() {
	case reminder.TodaySuspended:
		b.WriteString(mutedStyle.Render("Today's reminder is suspended: all habits done.") + "\n")
	default:
		b.WriteString(mutedStyle.Render("The reminder fires if any habit is still open.") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Habit slots: %d of %d used\n", len(m.habits), constants.MaxActiveHabits))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Account commands live on the CLI: 'ember account --help'"))

	return docStyle.Render(b.String())
}

func (m Model) viewConfirmArchive() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Archive %s %s?", m.habitToArchive.Emoji, m.habitToArchive.Title)),
			"Its history is kept, and a habit slot frees up.",
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewCelebration() string {
	if m.celebration == nil {
		return ""
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		celebrationStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			"🎉 Milestone! 🎉",
			"",
			fmt.Sprintf("%d days in a row", m.celebration.Threshold),
			"",
			mutedStyle.Render("press any key to continue"),
		)),
	)
}
