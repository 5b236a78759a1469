package calculation

import (
	"time"

	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/shopspring/decimal"
)

// EligibilityCalculator derives statutory pension age, start date and yearly
// fractions from a birth date and an injectable age table
type EligibilityCalculator struct {
	Table *domain.StatutoryAgeTable
}

// NewEligibilityCalculator creates a new eligibility calculator
func NewEligibilityCalculator(table *domain.StatutoryAgeTable) *EligibilityCalculator {
	return &EligibilityCalculator{Table: table}
}

// StatutoryAge returns the age for a birth date. A missing birth date or one
// outside the table yields domain.UndeterminedAge; callers treat that as
// "state pension unavailable", not as a failure.
func (ec *EligibilityCalculator) StatutoryAge(birthDate *time.Time) domain.AgeSpec {
	if birthDate == nil || birthDate.IsZero() {
		return domain.UndeterminedAge
	}
	return ec.Table.Lookup(*birthDate)
}

// StatutoryStartDate advances the birth date by the whole years and months of the age
func StatutoryStartDate(birthDate *time.Time, age domain.AgeSpec) (time.Time, bool) {
	if birthDate == nil || birthDate.IsZero() || !age.Determined {
		return time.Time{}, false
	}
	return birthDate.AddDate(age.Years, age.Months, 0), true
}

// YearFraction returns the share of targetYear during which the benefit is received:
// 0 before the start year, 1 after it, and (12 - startMonth)/12 in the start year
// with startMonth counted from zero.
func YearFraction(birthDate *time.Time, age domain.AgeSpec, targetYear int) decimal.Decimal {
	start, ok := StatutoryStartDate(birthDate, age)
	if !ok {
		return decimal.Zero
	}
	switch {
	case targetYear < start.Year():
		return decimal.Zero
	case targetYear > start.Year():
		return decimal.NewFromInt(1)
	}
	startMonth := int64(start.Month()) - 1
	return decimal.NewFromInt(12 - startMonth).Div(decimal.NewFromInt(12))
}

// Eligibility bundles the derived values for one person
type Eligibility struct {
	BirthDate *time.Time
	Age       domain.AgeSpec
	StartDate *time.Time
}

// Resolve derives the full eligibility of a person
func (ec *EligibilityCalculator) Resolve(person *domain.Person) Eligibility {
	if !person.HasBirthDate() {
		return Eligibility{Age: domain.UndeterminedAge}
	}
	age := ec.StatutoryAge(person.BirthDate)
	e := Eligibility{BirthDate: person.BirthDate, Age: age}
	if start, ok := StatutoryStartDate(person.BirthDate, age); ok {
		e.StartDate = &start
	}
	return e
}

// Fraction returns the benefit fraction of a calendar year
func (e Eligibility) Fraction(year int) decimal.Decimal {
	return YearFraction(e.BirthDate, e.Age, year)
}

// Available reports whether a start date could be derived
func (e Eligibility) Available() bool {
	return e.StartDate != nil
}

// Describe builds the eligibility report entry for a person over a year range
func (ec *EligibilityCalculator) Describe(owner domain.Owner, person *domain.Person, fromYear, toYear int) domain.EligibilityInfo {
	e := ec.Resolve(person)
	info := domain.EligibilityInfo{Owner: owner, Age: e.Age, StartDate: e.StartDate}
	if person != nil {
		info.Name = person.Name
	}
	if !e.Available() {
		return info
	}
	for year := fromYear; year <= toYear; year++ {
		info.Fractions = append(info.Fractions, domain.YearFraction{Year: year, Fraction: e.Fraction(year)})
	}
	return info
}
