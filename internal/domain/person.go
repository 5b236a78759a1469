package domain

import (
	"fmt"
	"time"
)

// Owner identifies whose income source or eligibility is meant
type Owner string

const (
	OwnerSelf    Owner = "self"
	OwnerPartner Owner = "partner"
)

// Person represents someone whose statutory pension eligibility depends on their birth date
type Person struct {
	Name      string     `yaml:"name" json:"name"`
	BirthDate *time.Time `yaml:"birth_date,omitempty" json:"birth_date,omitempty"`
}

// HasBirthDate reports whether eligibility can be derived for the person at all
func (p *Person) HasBirthDate() bool {
	return p != nil && p.BirthDate != nil && !p.BirthDate.IsZero()
}

// AgeInYear returns the age the person reaches during the given calendar year
func (p *Person) AgeInYear(year int) (int, bool) {
	if !p.HasBirthDate() {
		return 0, false
	}
	return year - p.BirthDate.Year(), true
}

// AgeSpec is a statutory pension age expressed in whole years plus remaining months.
// A zero-value AgeSpec is "not yet determined".
type AgeSpec struct {
	Years      int  `yaml:"years" json:"years"`
	Months     int  `yaml:"months" json:"months"`
	Determined bool `yaml:"determined" json:"determined"`
}

// UndeterminedAge is returned when no statutory age can be derived
var UndeterminedAge = AgeSpec{}

// NewAgeSpec creates a determined AgeSpec, normalizing months above 11 into years
func NewAgeSpec(years, months int) AgeSpec {
	years += months / 12
	months = months % 12
	return AgeSpec{Years: years, Months: months, Determined: true}
}

// TotalMonths returns the age in months
func (a AgeSpec) TotalMonths() int {
	return a.Years*12 + a.Months
}

// IsWholeYears reports whether the age has no month component
func (a AgeSpec) IsWholeYears() bool {
	return a.Months == 0
}

// String renders the age as "67" or "67y3m", or "undetermined"
func (a AgeSpec) String() string {
	if !a.Determined {
		return "undetermined"
	}
	if a.Months == 0 {
		return fmt.Sprintf("%d", a.Years)
	}
	return fmt.Sprintf("%dy%dm", a.Years, a.Months)
}

// Household groups the people a plan is made for and how their incomes interact
type Household struct {
	Self    Person  `yaml:"self" json:"self"`
	Partner *Person `yaml:"partner,omitempty" json:"partner,omitempty"`

	// CombinedWithdrawal means the withdrawal target is shared household income
	CombinedWithdrawal bool `yaml:"combined_withdrawal" json:"combined_withdrawal"`
	// OffsetsApply means state and private pensions reduce the withdrawals at all
	OffsetsApply bool `yaml:"offsets_apply" json:"offsets_apply"`
	// UseDocumentData selects document-extracted amounts over manual ones
	UseDocumentData DocumentUsage `yaml:"use_document_data" json:"use_document_data"`
}

// Person returns the household member for an owner, or nil if absent
func (h *Household) Person(owner Owner) *Person {
	switch owner {
	case OwnerSelf:
		return &h.Self
	case OwnerPartner:
		return h.Partner
	default:
		return nil
	}
}

// HasPartner reports whether a partner is part of the household
func (h *Household) HasPartner() bool {
	return h.Partner != nil
}

// PartnerCounts reports whether partner income may offset withdrawals
func (h *Household) PartnerCounts() bool {
	return h.HasPartner() && h.CombinedWithdrawal && h.OffsetsApply
}
