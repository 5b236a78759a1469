package calculation

import (
	"context"
	"testing"

	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioBRequest asks for 30000 a year with inflation, 10 years from now, for
// 15 years, closing the gap fully with a lump sum
func scenarioBRequest() domain.ReverseRequest {
	return domain.ReverseRequest{
		TargetIncome:      decimalPtr(decimal.NewFromInt(30000)),
		YearsToRetirement: intPtr(10),
		WithdrawalYears:   15,
		ApplyInflation:    true,
		InflationRate:     decimal.NewFromFloat(0.02),
		BuildUpRate:       decimal.NewFromFloat(0.04),
		InvestmentRate:    decimal.NewFromFloat(0.05),
		CurrentCapital:    decimal.Zero,
		LumpSumPercentage: decimal.NewFromInt(100),
		CurrentYear:       2025,
	}
}

func TestReverseSolver_ScenarioB(t *testing.T) {
	rs := NewReverseSolver(NewEligibilityCalculator(testAgeTable()))

	result, err := rs.Solve(context.Background(), scenarioBRequest(), domain.Household{}, nil)
	require.NoError(t, err)

	assert.True(t, result.Required.LumpSum.Equal(result.FullLumpSum), "100%% blend should equal the full lump sum")
	assert.True(t, result.Required.AnnualDeposit.IsZero())
	assert.True(t, result.Required.MonthlyDeposit.IsZero())
	assert.True(t, result.Shortfall.Equal(result.RequiredCapital), "no current capital means the whole requirement is short")
	assert.Equal(t, 2035, result.RetirementYear)
	require.Len(t, result.Records, 15)
	assert.Equal(t, 2035, result.Records[0].Year)
	assert.Equal(t, 2049, result.Records[14].Year)

	// the lump sum grows into the shortfall over the build-up years
	grown := FutureValue(result.Required.LumpSum, decimal.Zero, decimal.NewFromFloat(0.04), 10, domain.EndOfPeriod)
	assert.InDelta(t, result.Shortfall.InexactFloat64(), grown.InexactFloat64(), 0.01)
}

func TestReverseSolver_RequiredCapitalIsSumOfRecords(t *testing.T) {
	rs := NewReverseSolver(NewEligibilityCalculator(testAgeTable()))

	result, err := rs.Solve(context.Background(), scenarioBRequest(), domain.Household{}, nil)
	require.NoError(t, err)

	sum := decimal.Zero
	for i, r := range result.Records {
		sum = sum.Add(r.PresentValue)
		expected := r.NetWithdrawal.Div(growthFactor(decimal.NewFromFloat(0.05), i+1))
		assert.True(t, r.PresentValue.Equal(expected), "year %d should be discounted uniformly at the investment rate", r.Index)
	}
	assert.True(t, sum.Equal(result.RequiredCapital))
}

func TestReverseSolver_BlendBoundaries(t *testing.T) {
	rs := NewReverseSolver(NewEligibilityCalculator(testAgeTable()))

	req := scenarioBRequest().WithLumpSumPercentage(decimal.Zero)
	periodic, err := rs.Solve(context.Background(), req, domain.Household{}, nil)
	require.NoError(t, err)

	assert.True(t, periodic.Required.LumpSum.IsZero())
	assert.True(t, periodic.Required.AnnualDeposit.Equal(periodic.FullPeriodic.AnnualDeposit))
	assert.True(t, periodic.Required.MonthlyDeposit.Equal(periodic.FullPeriodic.MonthlyDeposit))
	assert.True(t, periodic.FullPeriodic.LumpSum.IsZero())

	lump, err := rs.Solve(context.Background(), scenarioBRequest(), domain.Household{}, nil)
	require.NoError(t, err)

	assert.True(t, lump.Required.LumpSum.Equal(lump.FullLumpSum))
	assert.True(t, lump.Required.AnnualDeposit.IsZero())
	assert.True(t, lump.Required.MonthlyDeposit.IsZero())

	// the reference values do not depend on the chosen blend
	assert.True(t, periodic.FullLumpSum.Equal(lump.FullLumpSum))
	assert.True(t, periodic.FullPeriodic.AnnualDeposit.Equal(lump.FullPeriodic.AnnualDeposit))
}

func TestReverseSolver_HalfBlend(t *testing.T) {
	rs := NewReverseSolver(NewEligibilityCalculator(testAgeTable()))

	result, err := rs.Solve(context.Background(), scenarioBRequest().WithLumpSumPercentage(decimal.NewFromInt(50)), domain.Household{}, nil)
	require.NoError(t, err)

	assert.InDelta(t, result.FullLumpSum.InexactFloat64()/2, result.Required.LumpSum.InexactFloat64(), 0.01)
	assert.InDelta(t, result.FullPeriodic.AnnualDeposit.InexactFloat64()/2, result.Required.AnnualDeposit.InexactFloat64(), 0.01)
	assert.InDelta(t, result.FullPeriodic.MonthlyDeposit.InexactFloat64()/2, result.Required.MonthlyDeposit.InexactFloat64(), 0.01)
}

func TestReverseSolver_DepositsAccumulateToShortfall(t *testing.T) {
	rs := NewReverseSolver(NewEligibilityCalculator(testAgeTable()))
	rate := decimal.NewFromFloat(0.04)

	result, err := rs.Solve(context.Background(), scenarioBRequest().WithLumpSumPercentage(decimal.Zero), domain.Household{}, nil)
	require.NoError(t, err)

	annual := FutureValue(decimal.Zero, result.Required.AnnualDeposit, rate, 10, domain.EndOfPeriod)
	assert.InDelta(t, result.Shortfall.InexactFloat64(), annual.InexactFloat64(), 0.01)

	monthly := FutureValue(decimal.Zero, result.Required.MonthlyDeposit, MonthlyRate(rate), 120, domain.EndOfPeriod)
	assert.InDelta(t, result.Shortfall.InexactFloat64(), monthly.InexactFloat64(), 0.01)
	assert.True(t, result.Required.MonthlyDeposit.LessThan(result.Required.AnnualDeposit.Div(decimal.NewFromInt(12))),
		"monthly deposits compound longer, so they sum to less than the annual deposit")
}

func TestReverseSolver_LongestHorizons(t *testing.T) {
	rs := NewReverseSolver(NewEligibilityCalculator(testAgeTable()))
	req := scenarioBRequest().WithLumpSumPercentage(decimal.Zero)
	req.YearsToRetirement = intPtr(MaxBuildUpYears)
	req.WithdrawalYears = MaxWithdrawalYears
	require.NoError(t, ValidateReverse(req))

	result, err := rs.Solve(context.Background(), req, domain.Household{}, nil)
	require.NoError(t, err)
	require.Len(t, result.Records, MaxWithdrawalYears)

	annual := FutureValue(decimal.Zero, result.Required.AnnualDeposit, req.BuildUpRate, MaxBuildUpYears, domain.EndOfPeriod)
	assert.InEpsilon(t, result.Shortfall.InexactFloat64(), annual.InexactFloat64(), 1e-9)
	assert.True(t, result.Required.MonthlyDeposit.IsPositive())
	assert.True(t, result.Required.MonthlyDeposit.LessThan(result.Required.AnnualDeposit.Div(decimal.NewFromInt(12))))
}

func TestReverseSolver_Cancelled(t *testing.T) {
	rs := NewReverseSolver(NewEligibilityCalculator(testAgeTable()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := rs.Solve(ctx, scenarioBRequest(), domain.Household{}, nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReverseSolver_ZeroRateGuard(t *testing.T) {
	rs := NewReverseSolver(NewEligibilityCalculator(testAgeTable()))
	req := domain.ReverseRequest{
		TargetIncome:      decimalPtr(decimal.NewFromInt(12000)),
		YearsToRetirement: intPtr(10),
		WithdrawalYears:   10,
		CurrentYear:       2025,
	}

	result, err := rs.Solve(context.Background(), req, domain.Household{}, nil)
	require.NoError(t, err)

	assert.True(t, result.RequiredCapital.Equal(decimal.NewFromInt(120000)))
	assert.True(t, result.Required.AnnualDeposit.Equal(decimal.NewFromInt(12000)))
	assert.True(t, result.Required.MonthlyDeposit.Equal(decimal.NewFromInt(1000)))
	assert.True(t, result.Required.LumpSum.IsZero())
	assert.True(t, result.FullLumpSum.Equal(decimal.NewFromInt(120000)))
}

func TestReverseSolver_NoYearsToRetirement(t *testing.T) {
	rs := NewReverseSolver(NewEligibilityCalculator(testAgeTable()))
	req := scenarioBRequest().WithLumpSumPercentage(decimal.NewFromInt(30))
	req.YearsToRetirement = intPtr(0)
	req.CurrentCapital = decimal.NewFromInt(100000)

	result, err := rs.Solve(context.Background(), req, domain.Household{}, nil)
	require.NoError(t, err)

	assert.True(t, result.FutureValueCurrentCapital.Equal(decimal.NewFromInt(100000)))
	assert.True(t, result.Required.LumpSum.Equal(result.Shortfall), "without build-up years the whole shortfall is a lump sum")
	assert.True(t, result.Required.AnnualDeposit.IsZero())
	assert.True(t, result.Required.MonthlyDeposit.IsZero())
	assert.True(t, result.FullLumpSum.Equal(result.Shortfall))
	assert.Equal(t, 2025, result.RetirementYear)
}

func TestReverseSolver_AlreadyFunded(t *testing.T) {
	rs := NewReverseSolver(NewEligibilityCalculator(testAgeTable()))
	req := scenarioBRequest().WithLumpSumPercentage(decimal.NewFromInt(40))
	req.CurrentCapital = decimal.NewFromInt(10000000)

	result, err := rs.Solve(context.Background(), req, domain.Household{}, nil)
	require.NoError(t, err)

	assert.True(t, result.IsFunded())
	assert.True(t, result.Shortfall.IsZero())
	assert.True(t, result.Required.LumpSum.IsZero())
	assert.True(t, result.Required.AnnualDeposit.IsZero())
	assert.True(t, result.FullLumpSum.IsZero())
}

func TestReverseSolver_DeductPensions(t *testing.T) {
	rs := NewReverseSolver(NewEligibilityCalculator(testAgeTable()))
	household := domain.Household{Self: domain.Person{Name: "Anna", BirthDate: timePtr(date(1965, 3, 10))}}
	sources := []domain.IncomeSource{stateSource(domain.OwnerSelf, domain.OriginManual, 15000)}

	without, err := rs.Solve(context.Background(), scenarioBRequest(), household, sources)
	require.NoError(t, err)

	req := scenarioBRequest()
	req.DeductPensions = true
	with, err := rs.Solve(context.Background(), req, household, sources)
	require.NoError(t, err)

	assert.True(t, with.RequiredCapital.LessThan(without.RequiredCapital))
	// statutory start 2032-03-10, before retirement in 2035
	assert.True(t, with.Records[0].SelfStatePension.Amount.Equal(decimal.NewFromInt(15000)))
	assert.True(t, without.Records[0].TotalOffset.IsZero())
}

func TestValidateReverse(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *domain.ReverseRequest)
		field  string
	}{
		{"Missing target", func(r *domain.ReverseRequest) { r.TargetIncome = nil }, "reverse.target_income"},
		{"Zero target", func(r *domain.ReverseRequest) { r.TargetIncome = decimalPtr(decimal.Zero) }, "reverse.target_income"},
		{"Missing years to retirement", func(r *domain.ReverseRequest) { r.YearsToRetirement = nil }, "reverse.years_to_retirement"},
		{"Negative years to retirement", func(r *domain.ReverseRequest) { r.YearsToRetirement = intPtr(-1) }, "reverse.years_to_retirement"},
		{"Retirement too far away", func(r *domain.ReverseRequest) { r.YearsToRetirement = intPtr(MaxBuildUpYears + 1) }, "reverse.years_to_retirement"},
		{"Zero withdrawal years", func(r *domain.ReverseRequest) { r.WithdrawalYears = 0 }, "reverse.withdrawal_years"},
		{"Withdrawal beyond a lifetime", func(r *domain.ReverseRequest) { r.WithdrawalYears = MaxWithdrawalYears + 1 }, "reverse.withdrawal_years"},
		{"Missing current year", func(r *domain.ReverseRequest) { r.CurrentYear = 0 }, "reverse.current_year"},
		{"Negative capital", func(r *domain.ReverseRequest) { r.CurrentCapital = decimal.NewFromInt(-5) }, "reverse.current_capital"},
		{"Blend above 100", func(r *domain.ReverseRequest) { r.LumpSumPercentage = decimal.NewFromInt(150) }, "reverse.lump_sum_percentage"},
		{"Negative blend", func(r *domain.ReverseRequest) { r.LumpSumPercentage = decimal.NewFromInt(-1) }, "reverse.lump_sum_percentage"},
		{"Minus one hundred percent build-up", func(r *domain.ReverseRequest) { r.BuildUpRate = decimal.NewFromInt(-1) }, "reverse.build_up_rate"},
		{"Negative investment rate", func(r *domain.ReverseRequest) { r.InvestmentRate = decimal.NewFromFloat(-0.01) }, "reverse.investment_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := scenarioBRequest()
			tt.modify(&req)

			err := ValidateReverse(req)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Equal(t, "INVALID_INPUT", domain.ErrorCode(err))
		})
	}
}

func TestMonthlyRate(t *testing.T) {
	assert.True(t, MonthlyRate(decimal.Zero).IsZero())

	m := MonthlyRate(decimal.NewFromFloat(0.04))
	compounded := one.Add(m).Pow(decimal.NewFromInt(12))
	assert.InDelta(t, 1.04, compounded.InexactFloat64(), 1e-12)
}
