package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(5, msg.Height-8))
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		m.previous = nil
		if msg.Config.Reverse == nil {
			m.loading = false
			m.err = errNoReverse
			return m, nil
		}
		m.blend.SetValue(msg.Config.Reverse.LumpSumPercentage.InexactFloat64())
		m.loadingMessage = "Solving required capital..."
		return m, tea.Batch(
			reverseCmd(m.engine, m.config, m.blend.Value),
			scheduleCmd(m.engine, m.config),
		)

	case ReverseCompleteMsg:
		// a slower solve for an earlier blend must not overwrite the current one
		if msg.Percentage != m.blend.Value {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		if m.reverse != nil && !m.reverse.LumpSumPercentage.Equal(msg.Result.LumpSumPercentage) {
			m.previous = m.reverse
		}
		m.reverse = msg.Result
		m.table.SetRows(scheduleRows(m.records()))
		return m, nil

	case ScheduleCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.schedule = msg.Schedule
		m.table.SetRows(scheduleRows(m.records()))
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case m.err != nil:
		// any other key dismisses the error
		m.err = nil
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.navigate(SceneHelp)
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.currentScene == SceneHelp {
			m.navigate(m.previousScene)
		} else {
			m.navigate(SceneSummary)
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if m.currentScene == SceneSummary {
			m.navigate(SceneSchedule)
		} else {
			m.navigate(SceneSummary)
		}
		return m, nil

	case key.Matches(msg, m.keys.Less):
		return m.adjustBlend(m.blend.Decrement)

	case key.Matches(msg, m.keys.More):
		return m.adjustBlend(m.blend.Increment)
	}

	if m.currentScene == SceneSchedule {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) navigate(scene Scene) {
	if scene == m.currentScene {
		return
	}
	m.previousScene = m.currentScene
	m.currentScene = scene
}

// adjustBlend moves the blend slider and re-solves when it actually moved
func (m Model) adjustBlend(move func() bool) (tea.Model, tea.Cmd) {
	if m.config == nil || m.config.Reverse == nil || !move() {
		return m, nil
	}
	return m, reverseCmd(m.engine, m.config, m.blend.Value)
}
