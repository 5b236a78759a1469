package server

import (
	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/shopspring/decimal"
)

// EligibilityRequest asks for the eligibility of a household over a year range
type EligibilityRequest struct {
	Household domain.Household `json:"household"`
	FromYear  int              `json:"from_year"`
	ToYear    int              `json:"to_year"`
}

// ForwardRequest asks for a withdrawal schedule
type ForwardRequest struct {
	Plan          domain.WithdrawalPlan `json:"plan"`
	Household     domain.Household      `json:"household"`
	IncomeSources []domain.IncomeSource `json:"income_sources"`
}

// ReverseRequest asks for the capital and contributions a target income needs
type ReverseRequest struct {
	Request       domain.ReverseRequest `json:"request"`
	Household     domain.Household      `json:"household"`
	IncomeSources []domain.IncomeSource `json:"income_sources"`
}

// CompareRequest asks for a reverse solve at several blend percentages
type CompareRequest struct {
	ReverseRequest
	Percentages []decimal.Decimal `json:"percentages,omitempty"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
