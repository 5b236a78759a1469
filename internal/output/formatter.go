package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/drawdown/internal/domain"
)

// Formatter renders a report into bytes
type Formatter interface {
	Name() string
	Format(report *domain.Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *domain.Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{
	"console":      ConsoleFormatter{},
	"console-lite": ConsoleLiteFormatter{},
	"csv":          CSVFormatter{},
	"json":         JSONFormatter{},
}

var formatAliases = map[string]string{
	"verbose": "console",
	"table":   "console",
	"summary": "console-lite",
	"lite":    "console-lite",
}

// GetFormatterByName returns the formatter for a name or alias, nil if unknown
func GetFormatterByName(name string) Formatter {
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames returns the registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the accepted aliases, sorted
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted renders the report and writes it to a timestamped file in the
// working directory, returning the file name
func WriteFormatted(f Formatter, report *domain.Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("drawdown_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
