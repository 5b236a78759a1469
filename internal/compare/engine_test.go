package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/shopspring/decimal"
)

func testEngine() *CompareEngine {
	table := &domain.StatutoryAgeTable{
		Rules: []domain.StatutoryAgeRule{
			{CohortStart: domain.YearMonth{Year: 1900, Month: 1}, AgeYears: 65},
			{CohortStart: domain.YearMonth{Year: 1960, Month: 1}, AgeYears: 67},
		},
		CoveredThrough: domain.YearMonth{Year: 1969, Month: 12},
	}
	return NewCompareEngine(calculation.NewCalculationEngine(table))
}

func testRequest() domain.ReverseRequest {
	target := decimal.NewFromInt(30000)
	years := 10
	return domain.ReverseRequest{
		TargetIncome:      &target,
		YearsToRetirement: &years,
		WithdrawalYears:   15,
		ApplyInflation:    true,
		InflationRate:     decimal.NewFromFloat(0.02),
		BuildUpRate:       decimal.NewFromFloat(0.04),
		InvestmentRate:    decimal.NewFromFloat(0.05),
		LumpSumPercentage: decimal.NewFromInt(50),
		CurrentYear:       2025,
	}
}

func TestCompareEngine_Compare_DefaultPercentages(t *testing.T) {
	ce := testEngine()

	compSet, err := ce.Compare(context.Background(), testRequest(), domain.Household{}, nil, CompareOptions{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if compSet.BaseName != "50% lump sum" {
		t.Errorf("Expected the request blend as base, got %s", compSet.BaseName)
	}
	if len(compSet.AlternativeResults) != 4 {
		t.Fatalf("Expected 4 alternatives (the base is not repeated), got %d", len(compSet.AlternativeResults))
	}

	expectedOrder := []string{"0% lump sum", "25% lump sum", "75% lump sum", "100% lump sum"}
	for i, name := range expectedOrder {
		if compSet.AlternativeResults[i].Name != name {
			t.Errorf("Alternative %d: expected %s, got %s", i, name, compSet.AlternativeResults[i].Name)
		}
	}

	zero := compSet.AlternativeResults[0]
	if !zero.LumpSum.IsZero() {
		t.Errorf("0%% blend should need no lump sum, got %s", zero.LumpSum)
	}
	full := compSet.AlternativeResults[3]
	if !full.MonthlyDeposit.IsZero() || !full.AnnualDeposit.IsZero() {
		t.Errorf("100%% blend should need no deposits, got %s / %s", full.AnnualDeposit, full.MonthlyDeposit)
	}
	if !full.LumpSum.Equal(full.Result.FullLumpSum) {
		t.Errorf("100%% blend lump sum %s should equal the full lump sum %s", full.LumpSum, full.Result.FullLumpSum)
	}

	half := compSet.BaseResult.LumpSum
	if half.Sub(full.LumpSum.Div(decimal.NewFromInt(2))).Abs().GreaterThan(decimal.NewFromFloat(0.01)) {
		t.Errorf("50%% lump sum %s should be half of %s", half, full.LumpSum)
	}

	for _, alt := range compSet.AlternativeResults {
		if !alt.Result.RequiredCapital.Equal(compSet.RequiredCapital) {
			t.Errorf("%s: required capital must not depend on the blend", alt.Name)
		}
	}
	if compSet.RetirementYear != 2035 || compSet.YearsToRetirement != 10 {
		t.Errorf("Unexpected retirement window %d / %d", compSet.RetirementYear, compSet.YearsToRetirement)
	}
	if len(compSet.Recommendations) == 0 {
		t.Error("Expected recommendations")
	}
}

func TestCompareEngine_Compare_ExplicitBase(t *testing.T) {
	ce := testEngine()
	base := decimal.NewFromInt(100)

	compSet, err := ce.Compare(context.Background(), testRequest(), domain.Household{}, nil, CompareOptions{
		BasePercentage: &base,
		Percentages:    []decimal.Decimal{decimal.NewFromInt(0), decimal.NewFromInt(100)},
		ConfigPath:     "plan.yaml",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if compSet.BaseName != "100% lump sum" {
		t.Errorf("Expected explicit base, got %s", compSet.BaseName)
	}
	if len(compSet.AlternativeResults) != 1 {
		t.Fatalf("Expected 1 alternative, got %d", len(compSet.AlternativeResults))
	}
	if compSet.ConfigPath != "plan.yaml" {
		t.Errorf("Expected config path to be carried, got %s", compSet.ConfigPath)
	}
	if !compSet.AlternativeResults[0].LumpSumDiffFromBase.Equal(compSet.BaseResult.LumpSum.Neg()) {
		t.Error("0% blend lump sum diff should be minus the base lump sum")
	}
}

func TestCompareEngine_Compare_InvalidRequest(t *testing.T) {
	ce := testEngine()
	req := testRequest()
	req.WithdrawalYears = 0

	_, err := ce.Compare(context.Background(), req, domain.Household{}, nil, CompareOptions{})

	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected invalid input, got %v", err)
	}
}

func TestCompareEngine_Compare_Cancelled(t *testing.T) {
	ce := testEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ce.Compare(ctx, testRequest(), domain.Household{}, nil, CompareOptions{})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestCompareEngine_CompareConfiguration(t *testing.T) {
	ce := testEngine()

	_, err := ce.CompareConfiguration(context.Background(), &domain.Configuration{}, CompareOptions{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected invalid input without a reverse request, got %v", err)
	}

	req := testRequest()
	compSet, err := ce.CompareConfiguration(context.Background(), &domain.Configuration{Reverse: &req}, CompareOptions{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if compSet.BaseResult == nil {
		t.Error("Expected a base result")
	}
}
