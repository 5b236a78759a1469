package calculation

import (
	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/shopspring/decimal"
)

type offsetKey struct {
	kind  domain.IncomeKind
	owner domain.Owner
}

// offsetKeys is the resolution table's row order
var offsetKeys = []offsetKey{
	{domain.StatePension, domain.OwnerSelf},
	{domain.PrivatePension, domain.OwnerSelf},
	{domain.StatePension, domain.OwnerPartner},
	{domain.PrivatePension, domain.OwnerPartner},
}

// YearOffsets are the pension amounts that reduce one year's gross withdrawal
type YearOffsets struct {
	SelfState    domain.OwnerOffset
	PartnerState domain.OwnerOffset
	Private      decimal.Decimal
}

// Total returns the sum of all offsets
func (yo YearOffsets) Total() decimal.Decimal {
	return yo.SelfState.Amount.Add(yo.PartnerState.Amount).Add(yo.Private)
}

// OffsetResolver decides once per calculation which income source is active for
// each (kind, owner) pair, then evaluates those sources per calendar year.
type OffsetResolver struct {
	enabled       bool
	partnerCounts bool
	active        map[offsetKey]domain.IncomeSource
	eligibility   map[domain.Owner]Eligibility
	people        map[domain.Owner]*domain.Person
}

// NewOffsetResolver builds the resolution table. When enabled is false every
// year resolves to zero offsets.
func NewOffsetResolver(ec *EligibilityCalculator, household *domain.Household, sources []domain.IncomeSource, enabled bool) *OffsetResolver {
	r := &OffsetResolver{
		enabled:       enabled,
		partnerCounts: enabled && household.HasPartner() && household.CombinedWithdrawal,
		active:        make(map[offsetKey]domain.IncomeSource),
		eligibility:   make(map[domain.Owner]Eligibility),
		people:        make(map[domain.Owner]*domain.Person),
	}
	if !enabled {
		return r
	}
	for _, owner := range []domain.Owner{domain.OwnerSelf, domain.OwnerPartner} {
		person := household.Person(owner)
		if person == nil {
			continue
		}
		r.people[owner] = person
		r.eligibility[owner] = ec.Resolve(person)
	}
	for _, key := range offsetKeys {
		if src, ok := selectSource(key, sources, household.UseDocumentData); ok {
			r.active[key] = src
		}
	}
	return r
}

// selectSource applies the origin precedence for one (kind, owner) pair:
// document-extracted data wins only when the caller opted into it for that pair;
// otherwise the manual value is used.
func selectSource(key offsetKey, sources []domain.IncomeSource, usage domain.DocumentUsage) (domain.IncomeSource, bool) {
	var manual, document *domain.IncomeSource
	for i := range sources {
		src := &sources[i]
		if src.Kind != key.kind || src.Owner != key.owner {
			continue
		}
		switch src.Origin {
		case domain.OriginDocumentExtracted:
			if document == nil {
				document = src
			}
		default:
			if manual == nil {
				manual = src
			}
		}
	}
	if usage.Enabled(key.kind, key.owner) && document != nil {
		return *document, true
	}
	if manual != nil {
		return *manual, true
	}
	return domain.IncomeSource{}, false
}

// ActiveSource returns the source chosen for a kind and owner
func (r *OffsetResolver) ActiveSource(kind domain.IncomeKind, owner domain.Owner) (domain.IncomeSource, bool) {
	src, ok := r.active[offsetKey{kind, owner}]
	return src, ok
}

// Eligibility returns the resolved eligibility of an owner
func (r *OffsetResolver) Eligibility(owner domain.Owner) (Eligibility, bool) {
	e, ok := r.eligibility[owner]
	return e, ok
}

func (r *OffsetResolver) ownerCounts(owner domain.Owner) bool {
	if !r.enabled {
		return false
	}
	if owner == domain.OwnerPartner {
		return r.partnerCounts
	}
	return true
}

// Resolve evaluates the active sources for a calendar year. State pensions are
// pro-rated by the year fraction; private pensions pay in full from the year the
// owner reaches the start age.
func (r *OffsetResolver) Resolve(year int) YearOffsets {
	offsets := YearOffsets{
		SelfState:    domain.OwnerOffset{Amount: decimal.Zero, Fraction: decimal.Zero},
		PartnerState: domain.OwnerOffset{Amount: decimal.Zero, Fraction: decimal.Zero},
		Private:      decimal.Zero,
	}
	for _, key := range offsetKeys {
		if !r.ownerCounts(key.owner) {
			continue
		}
		src, ok := r.active[key]
		if !ok {
			continue
		}
		switch key.kind {
		case domain.StatePension:
			fraction := r.eligibility[key.owner].Fraction(year)
			if fraction.IsZero() {
				continue
			}
			offset := domain.OwnerOffset{Amount: src.AnnualAmount.Mul(fraction), Fraction: fraction}
			if key.owner == domain.OwnerSelf {
				offsets.SelfState = offset
			} else {
				offsets.PartnerState = offset
			}
		case domain.PrivatePension:
			age, known := r.people[key.owner].AgeInYear(year)
			if !known || age < src.StartAge {
				continue
			}
			offsets.Private = offsets.Private.Add(src.AnnualAmount)
		}
	}
	return offsets
}
