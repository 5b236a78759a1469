package domain

import (
	"github.com/shopspring/decimal"
)

// ReverseRequest asks what capital and contributions a target income requires
type ReverseRequest struct {
	// TargetIncome is the yearly income before inflation and offsets (required)
	TargetIncome *decimal.Decimal `yaml:"target_income" json:"target_income"`
	// YearsToRetirement is the length of the build-up phase (required)
	YearsToRetirement *int `yaml:"years_to_retirement" json:"years_to_retirement"`

	WithdrawalYears int  `yaml:"withdrawal_years" json:"withdrawal_years"`
	ApplyInflation  bool `yaml:"apply_inflation" json:"apply_inflation"`
	DeductPensions  bool `yaml:"deduct_pensions" json:"deduct_pensions"`

	InflationRate  decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	BuildUpRate    decimal.Decimal `yaml:"build_up_rate" json:"build_up_rate"`
	InvestmentRate decimal.Decimal `yaml:"investment_rate" json:"investment_rate"`
	CurrentCapital decimal.Decimal `yaml:"current_capital" json:"current_capital"`

	// LumpSumPercentage splits the shortfall: 0 is fully periodic, 100 fully lump sum
	LumpSumPercentage decimal.Decimal `yaml:"lump_sum_percentage" json:"lump_sum_percentage"`

	// CurrentYear anchors calendar years for pension offsets
	CurrentYear int `yaml:"current_year" json:"current_year"`
}

// RetirementYear returns the calendar year of the first withdrawal
func (r *ReverseRequest) RetirementYear() int {
	if r.YearsToRetirement == nil {
		return r.CurrentYear
	}
	return r.CurrentYear + *r.YearsToRetirement
}

// WithLumpSumPercentage returns a copy of the request with a different blend
func (r ReverseRequest) WithLumpSumPercentage(pct decimal.Decimal) ReverseRequest {
	r.LumpSumPercentage = pct
	return r
}

// Contributions is one way of closing a capital shortfall
type Contributions struct {
	LumpSum        decimal.Decimal `json:"lump_sum"`
	AnnualDeposit  decimal.Decimal `json:"annual_deposit"`
	MonthlyDeposit decimal.Decimal `json:"monthly_deposit"`
}

// ReverseResult is the output of the reverse solver. Every field is derived from
// the request; a new request produces a new result.
type ReverseResult struct {
	RequiredCapital           decimal.Decimal `json:"required_capital"`
	FutureValueCurrentCapital decimal.Decimal `json:"future_value_current_capital"`
	Shortfall                 decimal.Decimal `json:"shortfall"`

	LumpSumPercentage decimal.Decimal `json:"lump_sum_percentage"`
	Required          Contributions   `json:"required"`

	// FullLumpSum and FullPeriodic close the entire shortfall one way only
	FullLumpSum  decimal.Decimal `json:"full_lump_sum"`
	FullPeriodic Contributions   `json:"full_periodic"`

	RetirementYear int          `json:"retirement_year"`
	Records        []YearRecord `json:"records"`
	Warnings       []string     `json:"warnings,omitempty"`
}

// IsFunded reports whether current capital already covers the requirement
func (r *ReverseResult) IsFunded() bool {
	return r.Shortfall.IsZero()
}
