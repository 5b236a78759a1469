package calculation

import (
	"context"
	"math"

	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ReverseSolver computes the capital a target income requires and the
// contributions that close the gap to it
type ReverseSolver struct {
	Eligibility *EligibilityCalculator
	Logger      Logger
}

// NewReverseSolver creates a new reverse solver
func NewReverseSolver(ec *EligibilityCalculator) *ReverseSolver {
	return &ReverseSolver{Eligibility: ec, Logger: NopLogger{}}
}

// ValidateReverse checks a reverse request before any computation
func ValidateReverse(req domain.ReverseRequest) error {
	if req.TargetIncome == nil {
		return domain.NewValidationError("reverse.target_income", "is required")
	}
	if !req.TargetIncome.IsPositive() {
		return domain.NewValidationError("reverse.target_income", "must be positive, got %s", req.TargetIncome.String())
	}
	if req.YearsToRetirement == nil {
		return domain.NewValidationError("reverse.years_to_retirement", "is required")
	}
	if *req.YearsToRetirement < 0 {
		return domain.NewValidationError("reverse.years_to_retirement", "cannot be negative, got %d", *req.YearsToRetirement)
	}
	if *req.YearsToRetirement > MaxBuildUpYears {
		return domain.NewValidationError("reverse.years_to_retirement", "must be at most %d, got %d", MaxBuildUpYears, *req.YearsToRetirement)
	}
	if req.WithdrawalYears <= 0 {
		return domain.NewValidationError("reverse.withdrawal_years", "must be positive, got %d", req.WithdrawalYears)
	}
	if req.WithdrawalYears > MaxWithdrawalYears {
		return domain.NewValidationError("reverse.withdrawal_years", "must be at most %d, got %d", MaxWithdrawalYears, req.WithdrawalYears)
	}
	if req.CurrentYear <= 0 {
		return domain.NewValidationError("reverse.current_year", "must be a calendar year, got %d", req.CurrentYear)
	}
	if req.CurrentCapital.IsNegative() {
		return domain.NewValidationError("reverse.current_capital", "cannot be negative")
	}
	if req.LumpSumPercentage.IsNegative() || req.LumpSumPercentage.GreaterThan(hundred) {
		return domain.NewValidationError("reverse.lump_sum_percentage", "must be between 0 and 100, got %s", req.LumpSumPercentage.String())
	}
	if err := validateRate("reverse.inflation_rate", req.InflationRate); err != nil {
		return err
	}
	if err := validateRate("reverse.build_up_rate", req.BuildUpRate); err != nil {
		return err
	}
	return validateRate("reverse.investment_rate", req.InvestmentRate)
}

// Solve runs both stages: the capital requirement at retirement, then the
// contributions that close the shortfall. ctx is checked once per year.
func (rs *ReverseSolver) Solve(ctx context.Context, req domain.ReverseRequest, household domain.Household, sources []domain.IncomeSource) (*domain.ReverseResult, error) {
	if err := ValidateReverse(req); err != nil {
		return nil, err
	}
	if err := ValidateSources(sources); err != nil {
		return nil, err
	}

	result := &domain.ReverseResult{
		LumpSumPercentage: req.LumpSumPercentage,
		RetirementYear:    req.RetirementYear(),
	}
	var err error
	result.Records, result.Warnings, err = rs.requirementRecords(ctx, req, household, sources)
	if err != nil {
		return nil, err
	}
	result.RequiredCapital = domain.SumRecords(result.Records).PresentValue

	n := *req.YearsToRetirement
	r := req.BuildUpRate
	result.FutureValueCurrentCapital = req.CurrentCapital.Mul(growthFactor(r, n))
	result.Shortfall = result.RequiredCapital.Sub(result.FutureValueCurrentCapital)
	if result.Shortfall.IsNegative() {
		result.Shortfall = decimal.Zero
	}

	result.FullLumpSum, result.FullPeriodic = fullContributions(result.Shortfall, r, n)
	result.Required = splitContributions(result.Shortfall, req.LumpSumPercentage, r, n)

	rs.logger().Debugf("reverse: required=%s fv_current=%s shortfall=%s blend=%s%% lump=%s annual=%s monthly=%s",
		result.RequiredCapital.StringFixed(2), result.FutureValueCurrentCapital.StringFixed(2),
		result.Shortfall.StringFixed(2), req.LumpSumPercentage.String(),
		result.Required.LumpSum.StringFixed(2), result.Required.AnnualDeposit.StringFixed(2),
		result.Required.MonthlyDeposit.StringFixed(2))
	return result, nil
}

// requirementRecords produces the stage one schedule: no capital input, each
// year discounted uniformly at the investment rate
func (rs *ReverseSolver) requirementRecords(ctx context.Context, req domain.ReverseRequest, household domain.Household, sources []domain.IncomeSource) ([]domain.YearRecord, []string, error) {
	resolver := NewOffsetResolver(rs.Eligibility, &household, sources, req.DeductPensions)
	warnings := eligibilityWarnings(resolver, &household, req.DeductPensions)
	for _, w := range warnings {
		rs.logger().Warnf("reverse: %s", w)
	}

	gross := newIndexation(*req.TargetIncome, req.ApplyInflation, req.InflationRate)
	discount := newDiscounter(domain.FlatDiscount(req.InvestmentRate))
	start := req.RetirementYear()
	records := make([]domain.YearRecord, 0, req.WithdrawalYears)
	for i := 1; i <= req.WithdrawalYears; i++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		year := start + i - 1
		record := buildRecord(i, year, gross.next(), resolver.Resolve(year))
		record.PresentValue = discount.next(record.NetWithdrawal)
		records = append(records, record)
	}
	return records, warnings, nil
}

// fullContributions closes the entire shortfall one way only
func fullContributions(shortfall, rate decimal.Decimal, years int) (decimal.Decimal, domain.Contributions) {
	periodic := domain.Contributions{
		LumpSum:        decimal.Zero,
		AnnualDeposit:  AnnualDeposit(shortfall, rate, years),
		MonthlyDeposit: MonthlyDeposit(shortfall, rate, years),
	}
	return LumpSum(shortfall, rate, years), periodic
}

// splitContributions divides the shortfall by the blend percentage. Without
// years to save in, the whole shortfall is due as a lump sum.
func splitContributions(shortfall, pct, rate decimal.Decimal, years int) domain.Contributions {
	if years == 0 {
		return domain.Contributions{LumpSum: shortfall, AnnualDeposit: decimal.Zero, MonthlyDeposit: decimal.Zero}
	}
	lumpPortion := shortfall.Mul(pct.Div(hundred))
	periodicPortion := shortfall.Sub(lumpPortion)
	return domain.Contributions{
		LumpSum:        LumpSum(lumpPortion, rate, years),
		AnnualDeposit:  AnnualDeposit(periodicPortion, rate, years),
		MonthlyDeposit: MonthlyDeposit(periodicPortion, rate, years),
	}
}

// LumpSum is the amount to invest today to reach target after years at rate
func LumpSum(target, rate decimal.Decimal, years int) decimal.Decimal {
	if target.IsZero() {
		return decimal.Zero
	}
	if years <= 0 {
		return target
	}
	return target.Div(growthFactor(rate, years))
}

// AnnualDeposit is the level end-of-year deposit that accumulates to target
func AnnualDeposit(target, rate decimal.Decimal, years int) decimal.Decimal {
	return sinkingFund(target, rate, years)
}

// MonthlyDeposit is the level end-of-month deposit that accumulates to target,
// using the monthly rate m equivalent to the annual one. Since (1+m)^12n equals
// (1+rate)^n, the accumulation factor is taken from the annual rate.
func MonthlyDeposit(target, rate decimal.Decimal, years int) decimal.Decimal {
	if target.IsZero() || years <= 0 {
		return decimal.Zero
	}
	if rate.IsZero() {
		return target.Div(decimal.NewFromInt(int64(years * 12)))
	}
	m := MonthlyRate(rate)
	return target.Mul(m).Div(growthFactor(rate, years).Sub(one))
}

// MonthlyRate returns (1+rate)^(1/12) − 1
func MonthlyRate(rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return decimal.Zero
	}
	return decimal.NewFromFloat(math.Pow(one.Add(rate).InexactFloat64(), 1.0/12.0) - 1)
}

// sinkingFund is the PMT formula target / (((1+r)^n − 1)/r). A zero rate
// reduces it to target / n; zero periods leave nothing to deposit.
func sinkingFund(target, rate decimal.Decimal, periods int) decimal.Decimal {
	if target.IsZero() || periods <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(periods))
	if rate.IsZero() {
		return target.Div(n)
	}
	factor := growthFactor(rate, periods).Sub(one).Div(rate)
	return target.Div(factor)
}

func (rs *ReverseSolver) logger() Logger {
	if rs.Logger == nil {
		return NopLogger{}
	}
	return rs.Logger
}
