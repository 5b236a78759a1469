package calculation

import (
	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/shopspring/decimal"
)

// DiscountFactor returns the compound growth that amount at periodIndex is divided by:
// (1+savingsRate)^k · (1+longRunRate)^(periodIndex−k) with k = min(periodIndex, savingsYears).
func DiscountFactor(periodIndex int, policy domain.DiscountPolicy) decimal.Decimal {
	if periodIndex <= 0 {
		return one
	}
	if periodIndex <= policy.SavingsYears {
		return growthFactor(policy.SavingsRate, periodIndex)
	}
	near := growthFactor(policy.SavingsRate, policy.SavingsYears)
	far := growthFactor(policy.LongRunRate, periodIndex-policy.SavingsYears)
	return near.Mul(far)
}

// PresentValue discounts amount received at periodIndex under the two-tier policy
func PresentValue(amount decimal.Decimal, periodIndex int, policy domain.DiscountPolicy) decimal.Decimal {
	if amount.IsZero() {
		return decimal.Zero
	}
	return amount.Div(DiscountFactor(periodIndex, policy))
}

// discounter steps through consecutive periods 1, 2, ... carrying the discount
// factor forward one multiplication per period
type discounter struct {
	policy domain.DiscountPolicy
	period int
	factor decimal.Decimal
}

func newDiscounter(policy domain.DiscountPolicy) *discounter {
	return &discounter{policy: policy, factor: one}
}

// next discounts amount received in the following period
func (d *discounter) next(amount decimal.Decimal) decimal.Decimal {
	d.period++
	rate := d.policy.LongRunRate
	if d.period <= d.policy.SavingsYears {
		rate = d.policy.SavingsRate
	}
	d.factor = d.factor.Mul(one.Add(rate))
	if amount.IsZero() {
		return decimal.Zero
	}
	return amount.Div(d.factor)
}

// ValidateDiscount checks a discount policy
func ValidateDiscount(field string, policy domain.DiscountPolicy) error {
	if policy.SavingsYears < 0 {
		return domain.NewValidationError(field+".savings_years", "cannot be negative")
	}
	if err := validateRate(field+".savings_rate", policy.SavingsRate); err != nil {
		return err
	}
	return validateRate(field+".long_run_rate", policy.LongRunRate)
}
