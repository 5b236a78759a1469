package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/drawdown/internal/domain"
)

// CalculationEngine orchestrates all drawdown calculations
type CalculationEngine struct {
	Eligibility *EligibilityCalculator
	Compounding *CompoundingCalculator
	Scheduler   *WithdrawalScheduler
	Solver      *ReverseSolver
	Logger      Logger
}

// NewCalculationEngine creates a new calculation engine around a statutory age table
func NewCalculationEngine(table *domain.StatutoryAgeTable) *CalculationEngine {
	ec := NewEligibilityCalculator(table)
	return &CalculationEngine{
		Eligibility: ec,
		Compounding: NewCompoundingCalculator(),
		Scheduler:   NewWithdrawalScheduler(ec),
		Solver:      NewReverseSolver(ec),
		Logger:      NopLogger{},
	}
}

// SetLogger sets the logger for the engine and its calculators
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.Scheduler.Logger = l
	ce.Solver.Logger = l
}

// EligibilityReport describes the statutory pension eligibility of every household
// member for the calendar years fromYear..toYear
func (ce *CalculationEngine) EligibilityReport(ctx context.Context, household domain.Household, fromYear, toYear int) ([]domain.EligibilityInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if toYear < fromYear {
		return nil, domain.NewValidationError("to_year", "must not be before from_year (%d < %d)", toYear, fromYear)
	}
	infos := []domain.EligibilityInfo{ce.Eligibility.Describe(domain.OwnerSelf, &household.Self, fromYear, toYear)}
	if household.HasPartner() {
		infos = append(infos, ce.Eligibility.Describe(domain.OwnerPartner, household.Partner, fromYear, toYear))
	}
	for _, info := range infos {
		if !info.Age.Determined {
			ce.Logger.Warnf("eligibility for %s: %v", info.Owner, domain.ErrUnresolvableEligibility)
		}
	}
	return infos, nil
}

// BuildUp projects the accumulation phase
func (ce *CalculationEngine) BuildUp(ctx context.Context, plan domain.BuildUpPlan) (*domain.BuildUpResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := ce.Compounding.Project(plan)
	if err != nil {
		return nil, err
	}
	ce.Logger.Debugf("build-up: %d years at %s, future value %s", plan.Years, plan.GrowthRate.String(), result.FutureValue.StringFixed(2))
	return result, nil
}

// Forward generates the withdrawal schedule
func (ce *CalculationEngine) Forward(ctx context.Context, plan domain.WithdrawalPlan, household domain.Household, sources []domain.IncomeSource) (*domain.Schedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ce.Scheduler.Schedule(ctx, plan, household, sources)
}

// Reverse solves for the capital and contributions a target income requires
func (ce *CalculationEngine) Reverse(ctx context.Context, req domain.ReverseRequest, household domain.Household, sources []domain.IncomeSource) (*domain.ReverseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ce.Solver.Solve(ctx, req, household, sources)
}

// RunConfiguration runs every phase a plan file defines. A build-up future value
// becomes the starting capital of the withdrawal phase when the plan does not
// set one explicitly.
func (ce *CalculationEngine) RunConfiguration(ctx context.Context, config *domain.Configuration) (*domain.Report, error) {
	report := &domain.Report{Name: config.Household.Self.Name}

	from, to := EligibilityWindow(config)
	eligibility, err := ce.EligibilityReport(ctx, config.Household, from, to)
	if err != nil {
		return nil, err
	}
	report.Eligibility = eligibility

	if config.BuildUp != nil {
		result, err := ce.BuildUp(ctx, *config.BuildUp)
		if err != nil {
			return nil, fmt.Errorf("build-up phase: %w", err)
		}
		report.BuildUp = result
	}

	if config.Withdrawal != nil {
		plan := *config.Withdrawal
		if plan.StartingCapital == nil && report.BuildUp != nil {
			fv := report.BuildUp.FutureValue
			plan.StartingCapital = &fv
		}
		schedule, err := ce.Forward(ctx, plan, config.Household, config.IncomeSources)
		if err != nil {
			return nil, fmt.Errorf("withdrawal phase: %w", err)
		}
		report.Schedule = schedule
	}

	if config.Reverse != nil {
		req := *config.Reverse
		if req.CurrentYear == 0 {
			req.CurrentYear = time.Now().Year()
		}
		result, err := ce.Reverse(ctx, req, config.Household, config.IncomeSources)
		if err != nil {
			return nil, fmt.Errorf("reverse solve: %w", err)
		}
		report.Reverse = result
	}

	return report, nil
}

// EligibilityWindow picks the calendar years the eligibility report covers: the
// withdrawal window when there is one, otherwise ten years from now
func EligibilityWindow(config *domain.Configuration) (int, int) {
	if w := config.Withdrawal; w != nil && w.StartYear > 0 && w.DurationYears > 0 {
		return w.StartYear, w.StartYear + w.DurationYears - 1
	}
	if r := config.Reverse; r != nil && r.CurrentYear > 0 && r.YearsToRetirement != nil && r.WithdrawalYears > 0 {
		start := r.RetirementYear()
		return start, start + r.WithdrawalYears - 1
	}
	now := time.Now().Year()
	return now, now + 9
}
