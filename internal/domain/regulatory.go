package domain

import (
	"fmt"
	"time"
)

// StatutoryAgeTable maps birth cohorts to the statutory pension age.
// This is loaded from regulatory.yaml so that revisions by the issuing
// authority need no code changes.
type StatutoryAgeTable struct {
	Metadata       RegulatoryMetadata `yaml:"metadata" json:"metadata"`
	Rules          []StatutoryAgeRule `yaml:"rules" json:"rules"`
	CoveredThrough YearMonth          `yaml:"covered_through" json:"covered_through"`
}

// RegulatoryMetadata contains information about the regulatory data
type RegulatoryMetadata struct {
	Jurisdiction string `yaml:"jurisdiction" json:"jurisdiction"`
	LastUpdated  string `yaml:"last_updated" json:"last_updated"`
	Description  string `yaml:"description" json:"description"`
}

// YearMonth is a calendar month, month 1-12
type YearMonth struct {
	Year  int `yaml:"year" json:"year"`
	Month int `yaml:"month" json:"month"`
}

// Before reports whether ym is an earlier month than other
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// YearMonthOf returns the calendar month of a date
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: int(t.Month())}
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// StatutoryAgeRule applies to everyone born in or after its cohort start month,
// up to the next rule's cohort start.
type StatutoryAgeRule struct {
	CohortStart YearMonth `yaml:"cohort_start" json:"cohort_start"`
	AgeYears    int       `yaml:"age_years" json:"age_years"`
	AgeMonths   int       `yaml:"age_months" json:"age_months"`
}

// Age returns the rule's statutory age
func (r StatutoryAgeRule) Age() AgeSpec {
	return NewAgeSpec(r.AgeYears, r.AgeMonths)
}

// Validate checks that the table is a monotonic step function
func (t *StatutoryAgeTable) Validate() error {
	if len(t.Rules) == 0 {
		return fmt.Errorf("statutory age table has no rules")
	}
	for i, rule := range t.Rules {
		if rule.CohortStart.Month < 1 || rule.CohortStart.Month > 12 {
			return fmt.Errorf("rule %d: cohort month %d out of range", i, rule.CohortStart.Month)
		}
		if rule.AgeYears <= 0 || rule.AgeMonths < 0 || rule.AgeMonths > 11 {
			return fmt.Errorf("rule %d: invalid age %dy%dm", i, rule.AgeYears, rule.AgeMonths)
		}
		if i == 0 {
			continue
		}
		prev := t.Rules[i-1]
		if !prev.CohortStart.Before(rule.CohortStart) {
			return fmt.Errorf("rule %d: cohort %s does not follow %s", i, rule.CohortStart, prev.CohortStart)
		}
		if rule.Age().TotalMonths() < prev.Age().TotalMonths() {
			return fmt.Errorf("rule %d: age %s is lower than previous cohort's %s", i, rule.Age(), prev.Age())
		}
	}
	last := t.Rules[len(t.Rules)-1]
	if t.CoveredThrough.Before(last.CohortStart) {
		return fmt.Errorf("covered_through %s precedes last cohort %s", t.CoveredThrough, last.CohortStart)
	}
	return nil
}

// Lookup returns the statutory age for a birth date, or UndeterminedAge when the
// birth date falls outside the table's coverage.
func (t *StatutoryAgeTable) Lookup(birthDate time.Time) AgeSpec {
	if t == nil || len(t.Rules) == 0 {
		return UndeterminedAge
	}
	born := YearMonthOf(birthDate)
	if born.Before(t.Rules[0].CohortStart) || t.CoveredThrough.Before(born) {
		return UndeterminedAge
	}
	age := UndeterminedAge
	for _, rule := range t.Rules {
		if born.Before(rule.CohortStart) {
			break
		}
		age = rule.Age()
	}
	return age
}
