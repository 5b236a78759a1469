package compare

import (
	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComparisonResult is one blend percentage with its derived metrics
type ComparisonResult struct {
	Name       string                `json:"name"`
	Percentage decimal.Decimal       `json:"percentage"`
	Result     *domain.ReverseResult `json:"-"`

	// Key Metrics
	LumpSum        decimal.Decimal `json:"lumpSum"`
	AnnualDeposit  decimal.Decimal `json:"annualDeposit"`
	MonthlyDeposit decimal.Decimal `json:"monthlyDeposit"`
	// TotalOutlay is the lump sum plus every monthly deposit, undiscounted
	TotalOutlay decimal.Decimal `json:"totalOutlay"`

	// Comparison to Base
	LumpSumDiffFromBase decimal.Decimal `json:"lumpSumDiffFromBase"`
	MonthlyDiffFromBase decimal.Decimal `json:"monthlyDiffFromBase"`
	OutlayDiffFromBase  decimal.Decimal `json:"outlayDiffFromBase"`
	OutlayPctFromBase   decimal.Decimal `json:"outlayPctFromBase"`
}

// ComparisonSet is the outcome of comparing several blends of one reverse request
type ComparisonSet struct {
	BaseName           string             `json:"baseName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`

	RetirementYear    int             `json:"retirementYear"`
	YearsToRetirement int             `json:"yearsToRetirement"`
	RequiredCapital   decimal.Decimal `json:"requiredCapital"`
	Shortfall         decimal.Decimal `json:"shortfall"`
}

// BlendName labels a blend percentage, e.g. "25% lump sum"
func BlendName(pct decimal.Decimal) string {
	return pct.String() + "% lump sum"
}

// MetricsCalculator extracts key metrics from reverse results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics of one blend
func (mc *MetricsCalculator) CalculateMetrics(result *domain.ReverseResult, yearsToRetirement int) ComparisonResult {
	months := decimal.NewFromInt(int64(12 * yearsToRetirement))
	required := result.Required
	return ComparisonResult{
		Name:           BlendName(result.LumpSumPercentage),
		Percentage:     result.LumpSumPercentage,
		Result:         result,
		LumpSum:        required.LumpSum,
		AnnualDeposit:  required.AnnualDeposit,
		MonthlyDeposit: required.MonthlyDeposit,
		TotalOutlay:    required.LumpSum.Add(required.MonthlyDeposit.Mul(months)),
	}
}

// CalculateComparison computes the deltas of a blend against the base blend
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.LumpSumDiffFromBase = alt.LumpSum.Sub(base.LumpSum)
	alt.MonthlyDiffFromBase = alt.MonthlyDeposit.Sub(base.MonthlyDeposit)
	alt.OutlayDiffFromBase = alt.TotalOutlay.Sub(base.TotalOutlay)

	if !base.TotalOutlay.IsZero() {
		alt.OutlayPctFromBase = alt.OutlayDiffFromBase.
			Div(base.TotalOutlay).
			Mul(hundred)
	}
	return alt
}

// GenerateRecommendations points out the cheapest blend overall and the blend
// with the lowest upfront payment
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil {
		return recommendations
	}
	if compSet.Shortfall.IsZero() {
		return append(recommendations, "Current capital already covers the requirement; no contributions needed")
	}
	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	lowestOutlay := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalOutlay.LessThan(lowestOutlay.TotalOutlay) {
			lowestOutlay = alt
		}
	}
	if lowestOutlay != compSet.BaseResult {
		savings := compSet.BaseResult.TotalOutlay.Sub(lowestOutlay.TotalOutlay)
		recommendations = append(recommendations,
			"Lowest Total Outlay: "+lowestOutlay.Name+" costs €"+savings.StringFixed(0)+
				" less in total than "+compSet.BaseName)
	}

	lowestUpfront := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.LumpSum.LessThan(lowestUpfront.LumpSum) {
			lowestUpfront = alt
		}
	}
	if lowestUpfront != compSet.BaseResult {
		recommendations = append(recommendations,
			"Lowest Upfront: "+lowestUpfront.Name+" needs €"+lowestUpfront.LumpSum.StringFixed(0)+
				" today and €"+lowestUpfront.MonthlyDeposit.StringFixed(0)+" per month")
	}

	return recommendations
}
