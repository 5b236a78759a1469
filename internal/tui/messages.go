package tui

import (
	"github.com/rgehrsitz/drawdown/internal/domain"
)

// Scene represents the screens of the explorer
type Scene int

const (
	SceneSummary Scene = iota
	SceneSchedule
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneSummary:
		return "Summary"
	case SceneSchedule:
		return "Schedule"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals the plan file has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// ReverseCompleteMsg carries a reverse solve for one blend percentage
type ReverseCompleteMsg struct {
	Percentage float64
	Result     *domain.ReverseResult
	Err        error
}

// ScheduleCompleteMsg carries the forward schedule of the plan's withdrawal phase
type ScheduleCompleteMsg struct {
	Schedule *domain.Schedule
	Err      error
}
