package domain

import (
	"github.com/shopspring/decimal"
)

// IncomeKind classifies income that offsets the withdrawal target
type IncomeKind string

const (
	StatePension   IncomeKind = "state_pension"
	PrivatePension IncomeKind = "private_pension"
)

// Origin records where an income amount came from
type Origin string

const (
	OriginManual            Origin = "manual"
	OriginDocumentExtracted Origin = "document"
)

// IncomeSource is a yearly benefit that reduces what has to be withdrawn from capital.
// State pensions start at the owner's statutory start date; private pensions start
// in the year the owner reaches StartAge.
type IncomeSource struct {
	Kind         IncomeKind      `yaml:"kind" json:"kind"`
	Owner        Owner           `yaml:"owner" json:"owner"`
	Origin       Origin          `yaml:"origin" json:"origin"`
	AnnualAmount decimal.Decimal `yaml:"annual_amount" json:"annual_amount"`
	StartAge     int             `yaml:"start_age,omitempty" json:"start_age,omitempty"`
}

// DocumentUsage holds the per (kind, owner) choice to prefer document-extracted data
type DocumentUsage struct {
	SelfStatePension      bool `yaml:"self_state_pension" json:"self_state_pension"`
	SelfPrivatePension    bool `yaml:"self_private_pension" json:"self_private_pension"`
	PartnerStatePension   bool `yaml:"partner_state_pension" json:"partner_state_pension"`
	PartnerPrivatePension bool `yaml:"partner_private_pension" json:"partner_private_pension"`
}

// Enabled reports whether document data should be used for the given kind and owner
func (du DocumentUsage) Enabled(kind IncomeKind, owner Owner) bool {
	switch {
	case kind == StatePension && owner == OwnerSelf:
		return du.SelfStatePension
	case kind == PrivatePension && owner == OwnerSelf:
		return du.SelfPrivatePension
	case kind == StatePension && owner == OwnerPartner:
		return du.PartnerStatePension
	case kind == PrivatePension && owner == OwnerPartner:
		return du.PartnerPrivatePension
	}
	return false
}

// OwnerOffset is one owner's state pension contribution in a year
type OwnerOffset struct {
	Amount   decimal.Decimal `json:"amount"`
	Fraction decimal.Decimal `json:"fraction"`
}
