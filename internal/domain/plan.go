package domain

import (
	"github.com/shopspring/decimal"
)

// Timing determines when periodic contributions are made within a period
type Timing string

const (
	EndOfPeriod   Timing = "end"
	StartOfPeriod Timing = "start"
)

// BuildUpPlan describes the accumulation phase
type BuildUpPlan struct {
	LumpSum            decimal.Decimal `yaml:"lump_sum" json:"lump_sum"`
	AnnualContribution decimal.Decimal `yaml:"annual_contribution" json:"annual_contribution"`
	ContributionTiming Timing          `yaml:"contribution_timing" json:"contribution_timing"`
	GrowthRate         decimal.Decimal `yaml:"growth_rate" json:"growth_rate"`
	Years              int             `yaml:"years" json:"years"`
}

// BuildUpYear is one year of the accumulation trajectory
type BuildUpYear struct {
	Index          int             `json:"index"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Contribution   decimal.Decimal `json:"contribution"`
	Growth         decimal.Decimal `json:"growth"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// BuildUpResult is the outcome of the accumulation phase
type BuildUpResult struct {
	Plan        BuildUpPlan     `json:"plan"`
	FutureValue decimal.Decimal `json:"future_value"`
	Trajectory  []BuildUpYear   `json:"trajectory"`
}

// DiscountPolicy is the two-tier discounting used for present values: the first
// SavingsYears periods at SavingsRate, every later period at LongRunRate.
type DiscountPolicy struct {
	SavingsYears int             `yaml:"savings_years" json:"savings_years"`
	SavingsRate  decimal.Decimal `yaml:"savings_rate" json:"savings_rate"`
	LongRunRate  decimal.Decimal `yaml:"long_run_rate" json:"long_run_rate"`
}

// FlatDiscount returns a policy that discounts every period at the same rate
func FlatDiscount(rate decimal.Decimal) DiscountPolicy {
	return DiscountPolicy{SavingsYears: 0, SavingsRate: rate, LongRunRate: rate}
}

// WithdrawalPlan describes the decumulation phase
type WithdrawalPlan struct {
	// StartYear is the calendar year of the first withdrawal
	StartYear int `yaml:"start_year" json:"start_year"`

	// AnnualTarget is the gross withdrawal before inflation and offsets
	AnnualTarget   decimal.Decimal `yaml:"annual_target" json:"annual_target"`
	ApplyInflation bool            `yaml:"apply_inflation" json:"apply_inflation"`
	InflationRate  decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	DurationYears  int             `yaml:"duration_years" json:"duration_years"`
	GrowthRate     decimal.Decimal `yaml:"growth_rate" json:"growth_rate"`
	Discount       DiscountPolicy  `yaml:"discount" json:"discount"`

	// StartingCapital enables capital tracking; normally the build-up future value
	StartingCapital *decimal.Decimal `yaml:"starting_capital,omitempty" json:"starting_capital,omitempty"`
}
