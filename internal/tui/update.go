package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/emberhabits/ember/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case externalChangeMsg:
		m.refresh()
		return m, m.waitForChange
	}

	switch m.state {
	case StateHabitForm:
		return m.updateHabitForm(msg)
	case StateReminderForm:
		return m.updateReminderForm(msg)
	case StateConfirmArchive:
		return m.updateConfirmArchive(msg)
	case StateCelebrate:
		if _, ok := msg.(tea.KeyMsg); ok {
			m.celebration = nil
			m.state = StateToday
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		for _, stop := range m.stopWatches {
			stop()
		}
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(keyMsg, m.keys.Tab):
		m.state = (m.state + 1) % 3
		m.formError = ""

	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.state = (m.state + 2) % 3
		m.formError = ""

	case key.Matches(keyMsg, m.keys.Up):
		if m.state == StateToday && m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.state == StateToday && m.cursor < len(m.habits)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Toggle):
		if m.state == StateToday && len(m.habits) > 0 {
			res, err := m.svc.ToggleHabit(m.habits[m.cursor].ID)
			if err != nil {
				m.formError = err.Error()
				break
			}
			m.formError = ""
			m.refresh()
			if res.Milestone != nil {
				m.celebration = res.Milestone
				m.previousState = m.state
				m.state = StateCelebrate
			}
		}

	case key.Matches(keyMsg, m.keys.Add):
		if m.state == StateToday {
			m.editingHabit = nil
			m.newHabitForm("", "")
			m.previousState = m.state
			m.state = StateHabitForm
			return m, m.form.Init()
		}

	case key.Matches(keyMsg, m.keys.Edit):
		if m.state == StateToday && len(m.habits) > 0 {
			habit := m.habits[m.cursor]
			m.editingHabit = &habit
			m.newHabitForm(habit.Title, habit.Emoji)
			m.previousState = m.state
			m.state = StateHabitForm
			return m, m.form.Init()
		}

	case key.Matches(keyMsg, m.keys.Archive):
		if m.state == StateToday && len(m.habits) > 0 {
			m.habitToArchive = m.habits[m.cursor]
			m.previousState = m.state
			m.state = StateConfirmArchive
		}

	case key.Matches(keyMsg, m.keys.Reminder):
		if m.state == StateOptions {
			m.newReminderForm(m.svc.ReminderTime())
			m.previousState = m.state
			m.state = StateReminderForm
			return m, m.form.Init()
		}
	}

	return m, nil
}

func (m Model) updateHabitForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		var err error
		if m.editingHabit != nil {
			_, err = m.svc.EditHabit(m.editingHabit.ID, m.habitForm.Title, m.habitForm.Emoji)
		} else {
			_, err = m.svc.CreateHabit(m.habitForm.Title, m.habitForm.Emoji)
		}
		if err != nil {
			m.formError = err.Error()
		} else {
			m.formError = ""
			m.refresh()
		}
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateReminderForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if rt, ok := parseClock(m.reminderForm.Time); ok {
			if err := m.svc.SetReminderTime(rt); err != nil {
				m.formError = err.Error()
			} else {
				m.formError = ""
			}
		}
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmArchive(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		if err := m.svc.ArchiveHabit(m.habitToArchive.ID); err != nil {
			m.formError = err.Error()
		} else {
			m.formError = ""
			m.refresh()
		}
		m.state = m.previousState
	case "n", "N", "esc":
		m.state = m.previousState
	}
	return m, nil
}

func parseClock(s string) (models.ReminderTime, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return models.ReminderTime{}, false
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return models.ReminderTime{}, false
	}
	return models.ReminderTime{Hour: hour, Minute: minute}, true
}
