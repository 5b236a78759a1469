package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// CompareEngine orchestrates blend comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	// BasePercentage is the blend the others are compared against; nil means the
	// request's own blend
	BasePercentage *decimal.Decimal
	// Percentages are the alternative blends; empty means DefaultPercentages
	Percentages []decimal.Decimal
	ConfigPath  string
}

// DefaultPercentages returns 0, 25, 50, 75 and 100
func DefaultPercentages() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.NewFromInt(0),
		decimal.NewFromInt(25),
		decimal.NewFromInt(50),
		decimal.NewFromInt(75),
		decimal.NewFromInt(100),
	}
}

// Compare solves the reverse request once per blend percentage. The solves are
// independent and run concurrently; the first failure cancels the rest.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	req domain.ReverseRequest,
	household domain.Household,
	sources []domain.IncomeSource,
	options CompareOptions,
) (*ComparisonSet, error) {

	base := req.LumpSumPercentage
	if options.BasePercentage != nil {
		base = *options.BasePercentage
	}
	alternatives := options.Percentages
	if len(alternatives) == 0 {
		alternatives = DefaultPercentages()
	}

	// base first, duplicates of the base dropped
	blends := []decimal.Decimal{base}
	for _, pct := range alternatives {
		if !pct.Equal(base) {
			blends = append(blends, pct)
		}
	}

	results := make([]*domain.ReverseResult, len(blends))
	g, gctx := errgroup.WithContext(ctx)
	for i, pct := range blends {
		i, pct := i, pct
		g.Go(func() error {
			result, err := ce.CalcEngine.Reverse(gctx, req.WithLumpSumPercentage(pct), household, sources)
			if err != nil {
				return fmt.Errorf("blend %s%%: %w", pct, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	years := 0
	if req.YearsToRetirement != nil {
		years = *req.YearsToRetirement
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(results[0], years)
	alts := make([]ComparisonResult, 0, len(results)-1)
	for _, result := range results[1:] {
		alt := ce.MetricsCalculator.CalculateMetrics(result, years)
		alts = append(alts, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		BaseName:           baseResult.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alts,
		ConfigPath:         options.ConfigPath,
		RetirementYear:     results[0].RetirementYear,
		YearsToRetirement:  years,
		RequiredCapital:    results[0].RequiredCapital,
		Shortfall:          results[0].Shortfall,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	ce.CalcEngine.Logger.Debugf("compared %d blends, base %s", len(blends), compSet.BaseName)
	return compSet, nil
}

// CompareConfiguration compares blends of the reverse request in a plan file
func (ce *CompareEngine) CompareConfiguration(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	if config.Reverse == nil {
		return nil, domain.NewValidationError("reverse", "the plan has no reverse request to compare")
	}
	req := *config.Reverse
	if req.CurrentYear == 0 {
		req.CurrentYear = time.Now().Year()
	}
	return ce.Compare(ctx, req, config.Household, config.IncomeSources, options)
}
