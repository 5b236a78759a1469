package domain

import (
	"github.com/shopspring/decimal"
)

// YearRecord is one year of a withdrawal schedule
type YearRecord struct {
	Index int `json:"index"` // 1-based year within the withdrawal window
	Year  int `json:"year"`  // calendar year

	GrossWithdrawal decimal.Decimal `json:"gross_withdrawal"`

	SelfStatePension    OwnerOffset     `json:"self_state_pension"`
	PartnerStatePension OwnerOffset     `json:"partner_state_pension"`
	PrivatePension      decimal.Decimal `json:"private_pension"`
	TotalOffset         decimal.Decimal `json:"total_offset"`

	NetWithdrawal decimal.Decimal `json:"net_withdrawal"`
	PresentValue  decimal.Decimal `json:"present_value"`

	// Capital tracking, only filled when the plan carries a starting capital
	OpeningCapital *decimal.Decimal `json:"opening_capital,omitempty"`
	Growth         *decimal.Decimal `json:"growth,omitempty"`
	ClosingCapital *decimal.Decimal `json:"closing_capital,omitempty"`
}

// StatePensionTotal returns the state pension offset of both owners
func (yr YearRecord) StatePensionTotal() decimal.Decimal {
	return yr.SelfStatePension.Amount.Add(yr.PartnerStatePension.Amount)
}

// ScheduleTotals aggregates a YearRecord sequence
type ScheduleTotals struct {
	GrossWithdrawal decimal.Decimal `json:"gross_withdrawal"`
	StatePension    decimal.Decimal `json:"state_pension"`
	PrivatePension  decimal.Decimal `json:"private_pension"`
	NetWithdrawal   decimal.Decimal `json:"net_withdrawal"`
	PresentValue    decimal.Decimal `json:"present_value"`
}

// SumRecords derives the totals from the records themselves, so the aggregate
// present value is always exactly the sum of the per-year present values.
func SumRecords(records []YearRecord) ScheduleTotals {
	totals := ScheduleTotals{
		GrossWithdrawal: decimal.Zero,
		StatePension:    decimal.Zero,
		PrivatePension:  decimal.Zero,
		NetWithdrawal:   decimal.Zero,
		PresentValue:    decimal.Zero,
	}
	for _, r := range records {
		totals.GrossWithdrawal = totals.GrossWithdrawal.Add(r.GrossWithdrawal)
		totals.StatePension = totals.StatePension.Add(r.StatePensionTotal())
		totals.PrivatePension = totals.PrivatePension.Add(r.PrivatePension)
		totals.NetWithdrawal = totals.NetWithdrawal.Add(r.NetWithdrawal)
		totals.PresentValue = totals.PresentValue.Add(r.PresentValue)
	}
	return totals
}

// Schedule is the output of a forward calculation
type Schedule struct {
	Records []YearRecord   `json:"records"`
	Totals  ScheduleTotals `json:"totals"`

	SelfAge    AgeSpec `json:"self_statutory_age"`
	PartnerAge AgeSpec `json:"partner_statutory_age"`

	// Filled only with capital tracking
	StartingCapital *decimal.Decimal `json:"starting_capital,omitempty"`
	Surplus         *decimal.Decimal `json:"surplus,omitempty"`
	DepletionYear   int              `json:"depletion_year,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// FirstYear returns the first record, if any
func (s *Schedule) FirstYear() (YearRecord, bool) {
	if s == nil || len(s.Records) == 0 {
		return YearRecord{}, false
	}
	return s.Records[0], true
}

// IsDepleted reports whether capital ran out within the window
func (s *Schedule) IsDepleted() bool {
	return s.DepletionYear != 0
}
