package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/emberhabits/ember/internal/app"
	"github.com/emberhabits/ember/internal/constants"
	"github.com/emberhabits/ember/internal/milestone"
	"github.com/emberhabits/ember/internal/models"
	"github.com/emberhabits/ember/internal/storage"
	"github.com/emberhabits/ember/internal/streak"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateStats
	StateOptions
	StateHabitForm
	StateReminderForm
	StateConfirmArchive
	StateCelebrate
)

type HabitFormModel struct {
	Title string
	Emoji string
}

type ReminderFormModel struct {
	Time string
}

type Model struct {
	svc *app.Service

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	habits []models.Habit
	log    models.DailyLog
	streak int
	weeks  [][]streak.Cell

	cursor         int
	form           *huh.Form
	habitForm      *HabitFormModel
	reminderForm   *ReminderFormModel
	editingHabit   *models.Habit
	habitToArchive models.Habit
	celebration    *milestone.Event

	habitWatch  <-chan storage.HabitsSnapshot
	logWatch    <-chan storage.LogSnapshot
	stopWatches []storage.CancelFunc

	formError string
	quitting  bool
	width     int
	height    int
}

func NewModel(svc *app.Service) Model {
	m := Model{
		svc:   svc,
		state: StateToday,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	m.refresh()

	// Live subscriptions keep the view current when another process
	// changes the data underneath us.
	if user, err := svc.Auth.CurrentUser(); err == nil {
		habitCh, cancelHabits := storage.WatchHabits(svc.Store, user.ID, 0)
		logCh, cancelLog := storage.WatchDailyLog(svc.Store, user.ID, svc.Today(), 0)
		m.habitWatch = habitCh
		m.logWatch = logCh
		m.stopWatches = []storage.CancelFunc{cancelHabits, cancelLog}
	}
	return m
}

// externalChangeMsg signals that a watch subscription delivered a snapshot.
type externalChangeMsg struct{}

// waitForChange blocks on the subscriptions and resolves on the next
// delivery from either.
func (m Model) waitForChange() tea.Msg {
	select {
	case _, ok := <-m.habitWatch:
		if !ok {
			return nil
		}
	case _, ok := <-m.logWatch:
		if !ok {
			return nil
		}
	}
	return externalChangeMsg{}
}

// refresh reloads habits, today's log and the stats from the service.
func (m *Model) refresh() {
	habits, err := m.svc.ActiveHabits()
	if err == nil {
		m.habits = habits
	}
	log, err := m.svc.TodayLog()
	if err == nil {
		m.log = log
	}
	if m.cursor >= len(m.habits) {
		m.cursor = max(0, len(m.habits)-1)
	}

	if current, err := m.svc.Streak(); err == nil {
		m.streak = current
	}
	if weeks, err := m.svc.Heatmap(); err == nil {
		m.weeks = weeks
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateToday:
		keys = append(keys, m.keys.Toggle, m.keys.Add, m.keys.Edit, m.keys.Archive)
	case StateOptions:
		keys = append(keys, m.keys.Reminder)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Toggle}
	actions := []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Archive, m.keys.Reminder}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	if m.habitWatch == nil {
		return nil
	}
	return m.waitForChange
}

func (m *Model) newHabitForm(title, emoji string) {
	m.habitForm = &HabitFormModel{Title: title, Emoji: emoji}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			CharLimit(constants.MaxHabitTitleLen).
			Value(&m.habitForm.Title),
		huh.NewInput().
			Title("Emoji").
			Placeholder("🔥").
			Value(&m.habitForm.Emoji),
	))
}

func (m *Model) newReminderForm(current models.ReminderTime) {
	m.reminderForm = &ReminderFormModel{Time: current.String()}

	// Half-hour picker slots across the day.
	var options []huh.Option[string]
	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 30} {
			v := fmt.Sprintf("%02d:%02d", hour, minute)
			options = append(options, huh.NewOption(v, v))
		}
	}

	m.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Daily reminder time").
			Options(options...).
			Value(&m.reminderForm.Time),
	))
}
