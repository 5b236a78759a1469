package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/rgehrsitz/drawdown/internal/config"
	"github.com/rgehrsitz/drawdown/internal/tui"
)

func main() {
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	} else {
		fmt.Println("Usage: drawdown-tui <plan-file>")
		os.Exit(1)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Error: Plan file not found: %s\n", configPath)
		os.Exit(1)
	}

	// settings come from DRAWDOWN_ environment variables only
	settings, err := config.LoadSettings("")
	if err != nil {
		fmt.Printf("Error loading settings: %v\n", err)
		os.Exit(1)
	}

	table, err := config.LoadStatutoryAgeTable(settings.RegulatoryFile)
	if err != nil {
		fmt.Printf("Error loading statutory age table: %v\n", err)
		os.Exit(1)
	}

	engine := calculation.NewCalculationEngine(table)

	// the alternate screen owns the terminal, so logs only go to a file
	logger := zap.NewNop()
	if settings.Logging.OutputFile != "" {
		logger, err = config.NewLogger(settings.Logging, "")
		if err != nil {
			fmt.Printf("Error creating logger: %v\n", err)
			os.Exit(1)
		}
	}
	defer func() { _ = logger.Sync() }()
	engine.SetLogger(calculation.NewZapLogger(logger))

	p := tea.NewProgram(
		tui.NewModel(configPath, engine),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
