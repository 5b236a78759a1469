package calculation

import (
	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Longest horizons a plan may span
const (
	MaxBuildUpYears    = 100
	MaxWithdrawalYears = 150
)

// growthFactor returns (1+rate)^periods
func growthFactor(rate decimal.Decimal, periods int) decimal.Decimal {
	return one.Add(rate).Pow(decimal.NewFromInt(int64(periods)))
}

// FutureValue compounds a lump sum plus level periodic deposits:
//
//	FV = lumpSum·(1+r)^n + deposit·((1+r)^n − 1)/r
//
// with the deposit term multiplied by (1+r) for start-of-period deposits.
// A zero rate degrades to lumpSum + deposit·n.
func FutureValue(lumpSum, deposit, rate decimal.Decimal, years int, timing domain.Timing) decimal.Decimal {
	if years <= 0 {
		return lumpSum
	}
	if rate.IsZero() {
		return lumpSum.Add(deposit.Mul(decimal.NewFromInt(int64(years))))
	}
	factor := growthFactor(rate, years)
	total := lumpSum.Mul(factor)
	if deposit.IsZero() {
		return total
	}
	annuity := deposit.Mul(factor.Sub(one)).Div(rate)
	if timing == domain.StartOfPeriod {
		annuity = annuity.Mul(one.Add(rate))
	}
	return total.Add(annuity)
}

// CompoundingCalculator handles the build-up phase
type CompoundingCalculator struct{}

// NewCompoundingCalculator creates a new compounding calculator
func NewCompoundingCalculator() *CompoundingCalculator {
	return &CompoundingCalculator{}
}

// ValidateBuildUp checks a build-up plan before any computation
func ValidateBuildUp(plan domain.BuildUpPlan) error {
	if plan.Years < 0 {
		return domain.NewValidationError("build_up.years", "cannot be negative")
	}
	if plan.Years > MaxBuildUpYears {
		return domain.NewValidationError("build_up.years", "must be at most %d, got %d", MaxBuildUpYears, plan.Years)
	}
	if plan.LumpSum.IsNegative() {
		return domain.NewValidationError("build_up.lump_sum", "cannot be negative")
	}
	if plan.AnnualContribution.IsNegative() {
		return domain.NewValidationError("build_up.annual_contribution", "cannot be negative")
	}
	if err := validateRate("build_up.growth_rate", plan.GrowthRate); err != nil {
		return err
	}
	switch plan.ContributionTiming {
	case "", domain.EndOfPeriod, domain.StartOfPeriod:
	default:
		return domain.NewValidationError("build_up.contribution_timing", "must be 'start' or 'end', got %q", plan.ContributionTiming)
	}
	return nil
}

// Project validates the plan and returns its future value and yearly trajectory
func (cc *CompoundingCalculator) Project(plan domain.BuildUpPlan) (*domain.BuildUpResult, error) {
	if err := ValidateBuildUp(plan); err != nil {
		return nil, err
	}
	return &domain.BuildUpResult{
		Plan:        plan,
		FutureValue: FutureValue(plan.LumpSum, plan.AnnualContribution, plan.GrowthRate, plan.Years, plan.ContributionTiming),
		Trajectory:  cc.Trajectory(plan),
	}, nil
}

// Trajectory simulates the plan year by year. The closed-form FutureValue stays
// authoritative; the trajectory is for display.
func (cc *CompoundingCalculator) Trajectory(plan domain.BuildUpPlan) []domain.BuildUpYear {
	years := make([]domain.BuildUpYear, 0, plan.Years)
	balance := plan.LumpSum
	for i := 1; i <= plan.Years; i++ {
		var growth, closing decimal.Decimal
		if plan.ContributionTiming == domain.StartOfPeriod {
			growth = balance.Add(plan.AnnualContribution).Mul(plan.GrowthRate)
			closing = balance.Add(plan.AnnualContribution).Add(growth)
		} else {
			growth = balance.Mul(plan.GrowthRate)
			closing = balance.Add(growth).Add(plan.AnnualContribution)
		}
		years = append(years, domain.BuildUpYear{
			Index:          i,
			OpeningBalance: balance,
			Contribution:   plan.AnnualContribution,
			Growth:         growth,
			ClosingBalance: closing,
		})
		balance = closing
	}
	return years
}

// validateRate rejects negative rates, which also excludes the −100% pole
func validateRate(field string, rate decimal.Decimal) error {
	if rate.IsNegative() {
		return domain.NewValidationError(field, "rate cannot be negative, got %s", rate.String())
	}
	return nil
}
