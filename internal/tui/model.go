package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/rgehrsitz/drawdown/internal/config"
	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/rgehrsitz/drawdown/internal/tui/components"
)

// blendStep is how far one key press moves the lump sum percentage
const blendStep = 5

// Model is the state of the capital explorer
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	configPath string
	config     *domain.Configuration
	engine     *calculation.CalculationEngine

	blend    *components.ParameterSlider
	reverse  *domain.ReverseResult
	previous *domain.ReverseResult // solve at the blend shown before the last move
	schedule *domain.Schedule
	table    table.Model
	keys     keyMap

	err            error
	loading        bool
	loadingMessage string
}

// NewModel creates an explorer for a plan file
func NewModel(configPath string, engine *calculation.CalculationEngine) Model {
	return Model{
		currentScene: SceneSummary,
		configPath:   configPath,
		engine:       engine,
		blend: components.NewParameterSlider("Lump sum share", 0, 0, 100, blendStep).
			WithUnit("%").
			WithDescription("0% funds the shortfall with deposits only, 100% with a single lump sum today"),
		table:          newScheduleTable(),
		keys:           defaultKeyMap(),
		width:          100,
		height:         30,
		loading:        true,
		loadingMessage: "Loading plan...",
	}
}

// Init loads the plan file
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath)
}

// loadConfigCmd returns a command that loads and validates the plan file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// reverseCmd solves the plan's reverse request at a blend percentage
func reverseCmd(engine *calculation.CalculationEngine, cfg *domain.Configuration, pct float64) tea.Cmd {
	return func() tea.Msg {
		req := cfg.Reverse.WithLumpSumPercentage(decimal.NewFromFloat(pct))
		result, err := engine.Reverse(context.Background(), req, cfg.Household, cfg.IncomeSources)
		return ReverseCompleteMsg{Percentage: pct, Result: result, Err: err}
	}
}

// scheduleCmd runs the build-up and withdrawal phases of the plan, if it has a
// withdrawal phase
func scheduleCmd(engine *calculation.CalculationEngine, cfg *domain.Configuration) tea.Cmd {
	if cfg.Withdrawal == nil {
		return nil
	}
	forward := *cfg
	forward.Reverse = nil
	return func() tea.Msg {
		report, err := engine.RunConfiguration(context.Background(), &forward)
		if err != nil {
			return ScheduleCompleteMsg{Err: err}
		}
		return ScheduleCompleteMsg{Schedule: report.Schedule}
	}
}

var errNoReverse = errors.New("the plan has no reverse section; add one to explore funding blends")

// records returns what the schedule table shows: the plan's own withdrawal
// schedule when there is one, otherwise the reverse requirement
func (m Model) records() []domain.YearRecord {
	if m.schedule != nil {
		return m.schedule.Records
	}
	if m.reverse != nil {
		return m.reverse.Records
	}
	return nil
}
