package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/shopspring/decimal"
)

// WithdrawalScheduler generates the year-by-year decumulation schedule
type WithdrawalScheduler struct {
	Eligibility *EligibilityCalculator
	Logger      Logger
}

// NewWithdrawalScheduler creates a new withdrawal scheduler
func NewWithdrawalScheduler(ec *EligibilityCalculator) *WithdrawalScheduler {
	return &WithdrawalScheduler{Eligibility: ec, Logger: NopLogger{}}
}

// ValidateWithdrawal checks a withdrawal plan before any computation
func ValidateWithdrawal(plan domain.WithdrawalPlan) error {
	if plan.DurationYears <= 0 {
		return domain.NewValidationError("withdrawal.duration_years", "must be positive, got %d", plan.DurationYears)
	}
	if plan.DurationYears > MaxWithdrawalYears {
		return domain.NewValidationError("withdrawal.duration_years", "must be at most %d, got %d", MaxWithdrawalYears, plan.DurationYears)
	}
	if plan.StartYear <= 0 {
		return domain.NewValidationError("withdrawal.start_year", "must be a calendar year, got %d", plan.StartYear)
	}
	if plan.AnnualTarget.IsNegative() {
		return domain.NewValidationError("withdrawal.annual_target", "cannot be negative")
	}
	if err := validateRate("withdrawal.inflation_rate", plan.InflationRate); err != nil {
		return err
	}
	if err := validateRate("withdrawal.growth_rate", plan.GrowthRate); err != nil {
		return err
	}
	if plan.StartingCapital != nil && plan.StartingCapital.IsNegative() {
		return domain.NewValidationError("withdrawal.starting_capital", "cannot be negative")
	}
	return ValidateDiscount("withdrawal.discount", plan.Discount)
}

// indexation yields the gross withdrawal of consecutive years: the target in
// year 1, grown by one inflation step per later year when correction is enabled
type indexation struct {
	target decimal.Decimal
	step   decimal.Decimal
	factor decimal.Decimal
	year   int
}

func newIndexation(target decimal.Decimal, applyInflation bool, inflationRate decimal.Decimal) *indexation {
	step := one
	if applyInflation {
		step = one.Add(inflationRate)
	}
	return &indexation{target: target, step: step, factor: one}
}

func (ix *indexation) next() decimal.Decimal {
	ix.year++
	if ix.year > 1 {
		ix.factor = ix.factor.Mul(ix.step)
	}
	return ix.target.Mul(ix.factor)
}

// GrossWithdrawal returns the target for year i (1-based)
func GrossWithdrawal(target decimal.Decimal, applyInflation bool, inflationRate decimal.Decimal, i int) decimal.Decimal {
	if !applyInflation || i <= 1 {
		return target
	}
	return target.Mul(growthFactor(inflationRate, i-1))
}

// buildRecord fills the offset and net fields of one year. Offsets larger than
// the gross withdrawal are dropped, never carried forward.
func buildRecord(index, year int, gross decimal.Decimal, offsets YearOffsets) domain.YearRecord {
	total := offsets.Total()
	net := gross.Sub(total)
	if net.IsNegative() {
		net = decimal.Zero
	}
	return domain.YearRecord{
		Index:               index,
		Year:                year,
		GrossWithdrawal:     gross,
		SelfStatePension:    offsets.SelfState,
		PartnerStatePension: offsets.PartnerState,
		PrivatePension:      offsets.Private,
		TotalOffset:         total,
		NetWithdrawal:       net,
	}
}

// Schedule runs the forward withdrawal calculation. ctx is checked once per year.
func (ws *WithdrawalScheduler) Schedule(ctx context.Context, plan domain.WithdrawalPlan, household domain.Household, sources []domain.IncomeSource) (*domain.Schedule, error) {
	if err := ValidateWithdrawal(plan); err != nil {
		return nil, err
	}
	if err := ValidateSources(sources); err != nil {
		return nil, err
	}

	resolver := NewOffsetResolver(ws.Eligibility, &household, sources, household.OffsetsApply)
	schedule := &domain.Schedule{
		Records:    make([]domain.YearRecord, 0, plan.DurationYears),
		SelfAge:    ws.Eligibility.StatutoryAge(household.Self.BirthDate),
		PartnerAge: domain.UndeterminedAge,
	}
	if household.HasPartner() {
		schedule.PartnerAge = ws.Eligibility.StatutoryAge(household.Partner.BirthDate)
	}
	schedule.Warnings = eligibilityWarnings(resolver, &household, household.OffsetsApply)
	for _, w := range schedule.Warnings {
		ws.logger().Warnf("forward schedule: %s", w)
	}

	var capital decimal.Decimal
	tracking := plan.StartingCapital != nil
	if tracking {
		capital = *plan.StartingCapital
	}

	gross := newIndexation(plan.AnnualTarget, plan.ApplyInflation, plan.InflationRate)
	discount := newDiscounter(plan.Discount)
	for i := 1; i <= plan.DurationYears; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		year := plan.StartYear + i - 1
		record := buildRecord(i, year, gross.next(), resolver.Resolve(year))
		record.PresentValue = discount.next(record.NetWithdrawal)

		ws.logger().Debugf("year %d (%d): gross=%s offsets=%s net=%s pv=%s",
			i, year, record.GrossWithdrawal.StringFixed(2), record.TotalOffset.StringFixed(2),
			record.NetWithdrawal.StringFixed(2), record.PresentValue.StringFixed(2))

		if tracking {
			opening := capital
			remaining := opening.Sub(record.NetWithdrawal)
			if remaining.Sign() <= 0 && !record.NetWithdrawal.IsZero() && schedule.DepletionYear == 0 {
				schedule.DepletionYear = year
			}
			if remaining.IsNegative() {
				remaining = decimal.Zero
			}
			growth := remaining.Mul(plan.GrowthRate)
			closing := remaining.Add(growth)
			record.OpeningCapital = &opening
			record.Growth = &growth
			record.ClosingCapital = &closing
			capital = closing
		}

		schedule.Records = append(schedule.Records, record)
	}

	schedule.Totals = domain.SumRecords(schedule.Records)
	if tracking {
		start := *plan.StartingCapital
		surplus := start.Sub(schedule.Totals.PresentValue)
		schedule.StartingCapital = &start
		schedule.Surplus = &surplus
	}
	return schedule, nil
}

func (ws *WithdrawalScheduler) logger() Logger {
	if ws.Logger == nil {
		return NopLogger{}
	}
	return ws.Logger
}

// ValidateSources rejects negative amounts, unknown kinds, owners or origins, and
// duplicate (kind, owner, origin) entries
func ValidateSources(sources []domain.IncomeSource) error {
	seen := make(map[string]bool, len(sources))
	for i, src := range sources {
		field := fmt.Sprintf("income_sources[%d]", i)
		switch src.Kind {
		case domain.StatePension, domain.PrivatePension:
		default:
			return domain.NewValidationError(field+".kind", "unknown income kind %q", src.Kind)
		}
		switch src.Owner {
		case domain.OwnerSelf, domain.OwnerPartner:
		default:
			return domain.NewValidationError(field+".owner", "unknown owner %q", src.Owner)
		}
		switch src.Origin {
		case "", domain.OriginManual, domain.OriginDocumentExtracted:
		default:
			return domain.NewValidationError(field+".origin", "unknown origin %q", src.Origin)
		}
		if src.AnnualAmount.IsNegative() {
			return domain.NewValidationError(field+".annual_amount", "cannot be negative")
		}
		if src.StartAge < 0 {
			return domain.NewValidationError(field+".start_age", "cannot be negative")
		}
		origin := src.Origin
		if origin == "" {
			origin = domain.OriginManual
		}
		key := fmt.Sprintf("%s/%s/%s", src.Kind, src.Owner, origin)
		if seen[key] {
			return domain.NewValidationError(field, "duplicate %s source for %s (%s)", src.Kind, src.Owner, origin)
		}
		seen[key] = true
	}
	return nil
}

// eligibilityWarnings lists pension sources that can never pay out because the
// owner's birth date or statutory age is unknown
func eligibilityWarnings(resolver *OffsetResolver, household *domain.Household, enabled bool) []string {
	if !enabled {
		return nil
	}
	var warnings []string
	for _, owner := range []domain.Owner{domain.OwnerSelf, domain.OwnerPartner} {
		if owner == domain.OwnerPartner && !(household.HasPartner() && household.CombinedWithdrawal) {
			continue
		}
		if _, ok := resolver.ActiveSource(domain.StatePension, owner); !ok {
			continue
		}
		e, _ := resolver.Eligibility(owner)
		if e.Available() {
			continue
		}
		if e.BirthDate == nil {
			warnings = append(warnings, fmt.Sprintf("%s: no birth date, state pension offset omitted", owner))
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: %s, state pension offset omitted", owner, domain.ErrUnresolvableEligibility))
		}
	}
	for _, owner := range []domain.Owner{domain.OwnerSelf, domain.OwnerPartner} {
		if owner == domain.OwnerPartner && !(household.HasPartner() && household.CombinedWithdrawal) {
			continue
		}
		if _, ok := resolver.ActiveSource(domain.PrivatePension, owner); !ok {
			continue
		}
		if !household.Person(owner).HasBirthDate() {
			warnings = append(warnings, fmt.Sprintf("%s: no birth date, private pension offset omitted", owner))
		}
	}
	return warnings
}
