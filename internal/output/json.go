package output

import (
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/drawdown/internal/domain"
)

// JSONFormatter renders the whole report. Decimals are encoded as strings so no
// precision is lost.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
