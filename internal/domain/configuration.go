package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Configuration represents a complete plan file
type Configuration struct {
	Household     Household       `yaml:"household" json:"household"`
	IncomeSources []IncomeSource  `yaml:"income_sources" json:"income_sources"`
	BuildUp       *BuildUpPlan    `yaml:"build_up,omitempty" json:"build_up,omitempty"`
	Withdrawal    *WithdrawalPlan `yaml:"withdrawal,omitempty" json:"withdrawal,omitempty"`
	Reverse       *ReverseRequest `yaml:"reverse,omitempty" json:"reverse,omitempty"`
}

// SourcesFor returns the configured sources of a kind and owner
func (c *Configuration) SourcesFor(kind IncomeKind, owner Owner) []IncomeSource {
	var out []IncomeSource
	for _, src := range c.IncomeSources {
		if src.Kind == kind && src.Owner == owner {
			out = append(out, src)
		}
	}
	return out
}

// Report bundles everything a formatter may render for one plan
type Report struct {
	Name        string            `json:"name,omitempty"`
	Eligibility []EligibilityInfo `json:"eligibility,omitempty"`
	BuildUp     *BuildUpResult    `json:"build_up,omitempty"`
	Schedule    *Schedule         `json:"schedule,omitempty"`
	Reverse     *ReverseResult    `json:"reverse,omitempty"`
}

// EligibilityInfo summarizes one person's statutory pension eligibility
type EligibilityInfo struct {
	Owner     Owner          `json:"owner"`
	Name      string         `json:"name,omitempty"`
	Age       AgeSpec        `json:"age"`
	StartDate *time.Time     `json:"start_date,omitempty"`
	Fractions []YearFraction `json:"fractions,omitempty"`
}

// YearFraction is the share of a calendar year in which a benefit is received
type YearFraction struct {
	Year     int             `json:"year"`
	Fraction decimal.Decimal `json:"fraction"`
}
