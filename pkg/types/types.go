package types

import "slices"

// Tier is the partnership level. Closed set; persisted as the literal
// lowercase string.
type Tier string

const (
	TierCore     Tier = "core"
	TierPremium  Tier = "premium"
	TierPlatinum Tier = "platinum"
)

var validTiers = []Tier{TierCore, TierPremium, TierPlatinum}

func (t Tier) IsValid() bool {
	return slices.Contains(validTiers, t)
}

func (t Tier) String() string {
	return string(t)
}

// Tiers returns the closed set of partnership tiers in ascending order.
func Tiers() []Tier {
	return slices.Clone(validTiers)
}

// CertificateType distinguishes person certificates from company certificates.
type CertificateType string

const (
	CertificatePersonal CertificateType = "personal"
	CertificateCompany  CertificateType = "company"
)

func (c CertificateType) IsValid() bool {
	return c == CertificatePersonal || c == CertificateCompany
}

const (
	CompanyKind = "Company"
	PersonKind  = "Person"
	InvalidKind = "InvalidKind"
)

const (
	ResourceNameCompanies = "companies"
	ResourceNamePeople    = "people"
)
