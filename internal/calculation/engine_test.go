package calculation

import (
	"context"
	"testing"
	"time"

	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine(testAgeTable())

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Eligibility, "Should initialize eligibility calculator")
	assert.NotNil(t, engine.Compounding, "Should initialize compounding calculator")
	assert.NotNil(t, engine.Scheduler, "Should initialize withdrawal scheduler")
	assert.NotNil(t, engine.Solver, "Should initialize reverse solver")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.Same(t, engine.Eligibility, engine.Scheduler.Eligibility, "Scheduler should share the eligibility calculator")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine(testAgeTable())

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)

	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")
	assert.Equal(t, customLogger, engine.Scheduler.Logger, "Should propagate to scheduler")
	assert.Equal(t, customLogger, engine.Solver.Logger, "Should propagate to solver")

	// nil falls back to the no-op logger
	engine.SetLogger(nil)

	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_EligibilityReport(t *testing.T) {
	engine := NewCalculationEngine(testAgeTable())
	household := domain.Household{
		Self:    domain.Person{Name: "Anna", BirthDate: timePtr(date(1963, 9, 1))},
		Partner: &domain.Person{Name: "Ben", BirthDate: timePtr(date(1975, 2, 1))},
	}

	infos, err := engine.EligibilityReport(context.Background(), household, 2029, 2031)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	self := infos[0]
	assert.Equal(t, domain.OwnerSelf, self.Owner)
	assert.Equal(t, "Anna", self.Name)
	assert.Equal(t, domain.NewAgeSpec(67, 0), self.Age)
	require.NotNil(t, self.StartDate)
	assert.Equal(t, date(2030, 9, 1), *self.StartDate)
	require.Len(t, self.Fractions, 3)
	assert.True(t, self.Fractions[0].Fraction.IsZero())
	assert.InDelta(t, 0.3333, self.Fractions[1].Fraction.InexactFloat64(), 0.0001)
	assert.True(t, self.Fractions[2].Fraction.Equal(decimal.NewFromInt(1)))

	partner := infos[1]
	assert.Equal(t, domain.OwnerPartner, partner.Owner)
	assert.False(t, partner.Age.Determined, "Birth date beyond the table should be undetermined")
	assert.Nil(t, partner.StartDate)
	assert.Empty(t, partner.Fractions)
}

func TestCalculationEngine_EligibilityReport_InvalidRange(t *testing.T) {
	engine := NewCalculationEngine(testAgeTable())

	_, err := engine.EligibilityReport(context.Background(), domain.Household{}, 2030, 2029)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCalculationEngine_CancelledContext(t *testing.T) {
	engine := NewCalculationEngine(testAgeTable())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.BuildUp(ctx, domain.BuildUpPlan{Years: 1})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = engine.Forward(ctx, scenarioAPlan(), domain.Household{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculationEngine_RunConfiguration(t *testing.T) {
	engine := NewCalculationEngine(testAgeTable())
	logger := &TestLogger{}
	engine.SetLogger(logger)

	target := decimal.NewFromInt(30000)
	config := &domain.Configuration{
		Household: domain.Household{
			Self:         domain.Person{Name: "Anna", BirthDate: timePtr(date(1965, 3, 10))},
			OffsetsApply: true,
		},
		IncomeSources: []domain.IncomeSource{
			{Kind: domain.StatePension, Owner: domain.OwnerSelf, Origin: domain.OriginManual, AnnualAmount: decimal.NewFromInt(12000)},
		},
		BuildUp: &domain.BuildUpPlan{
			LumpSum:            decimal.NewFromInt(100000),
			AnnualContribution: decimal.NewFromInt(6000),
			ContributionTiming: domain.EndOfPeriod,
			GrowthRate:         decimal.NewFromFloat(0.04),
			Years:              5,
		},
		Withdrawal: &domain.WithdrawalPlan{
			StartYear:     2030,
			AnnualTarget:  decimal.NewFromInt(40000),
			DurationYears: 5,
			Discount:      domain.FlatDiscount(decimal.NewFromFloat(0.05)),
		},
		Reverse: &domain.ReverseRequest{
			TargetIncome:      &target,
			YearsToRetirement: intPtr(5),
			WithdrawalYears:   20,
			InvestmentRate:    decimal.NewFromFloat(0.05),
			BuildUpRate:       decimal.NewFromFloat(0.04),
			LumpSumPercentage: decimal.NewFromInt(50),
			CurrentYear:       2025,
		},
	}

	report, err := engine.RunConfiguration(context.Background(), config)
	require.NoError(t, err)

	assert.Equal(t, "Anna", report.Name)
	require.Len(t, report.Eligibility, 1)
	assert.Equal(t, 2030, report.Eligibility[0].Fractions[0].Year, "Eligibility should cover the withdrawal window")

	require.NotNil(t, report.BuildUp)
	require.NotNil(t, report.Schedule)
	require.NotNil(t, report.Schedule.StartingCapital, "Build-up result should feed the withdrawal phase")
	assert.True(t, report.Schedule.StartingCapital.Equal(report.BuildUp.FutureValue))
	assert.Nil(t, config.Withdrawal.StartingCapital, "Caller's plan must not be modified")

	// born 1965-03 retires at 67 in 2032-03: 10/12 in 2032, full in 2033
	assert.True(t, report.Schedule.Records[1].TotalOffset.IsZero())
	assert.InDelta(t, 10000.0, report.Schedule.Records[2].SelfStatePension.Amount.InexactFloat64(), 0.000001)
	assert.True(t, report.Schedule.Records[3].SelfStatePension.Amount.Equal(decimal.NewFromInt(12000)))

	require.NotNil(t, report.Reverse)
	assert.Equal(t, 2030, report.Reverse.RetirementYear)
	assert.NotEmpty(t, logger.messages, "Engine should log through the configured logger")
}

func TestCalculationEngine_RunConfiguration_WrapsPhaseErrors(t *testing.T) {
	engine := NewCalculationEngine(testAgeTable())
	config := &domain.Configuration{
		BuildUp: &domain.BuildUpPlan{Years: -1},
	}

	_, err := engine.RunConfiguration(context.Background(), config)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "build-up phase")
}

// testAgeTable is a small statutory age table: 65 up to 1954, 66y4m for the
// 1955-1959 cohorts, 67 from 1960, undetermined after 1969
func testAgeTable() *domain.StatutoryAgeTable {
	return &domain.StatutoryAgeTable{
		Rules: []domain.StatutoryAgeRule{
			{CohortStart: domain.YearMonth{Year: 1900, Month: 1}, AgeYears: 65},
			{CohortStart: domain.YearMonth{Year: 1955, Month: 1}, AgeYears: 66, AgeMonths: 4},
			{CohortStart: domain.YearMonth{Year: 1960, Month: 1}, AgeYears: 67},
		},
		CoveredThrough: domain.YearMonth{Year: 1969, Month: 12},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Helper functions for creating pointers
func timePtr(t time.Time) *time.Time {
	return &t
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func intPtr(i int) *int {
	return &i
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}
