package evaluation

import (
	"time"

	"github.com/shopspring/decimal"
)

// QualificationPolicy carries the thresholds applied by CheckEligibility and
// the validity window stamped on accepted bids. Procurement rounds differ in
// where bidders must be located and which certifications they must hold, so
// the policy is injected per round rather than compiled in.
type QualificationPolicy struct {
	MinTurnover            decimal.Decimal
	MinExperienceYears     int
	RequiredCertifications []string
	MinReferences          int
	RequiredLocation       string
	ValidityWindow         time.Duration
}

func DefaultQualificationPolicy() QualificationPolicy {
	return QualificationPolicy{
		MinTurnover:            decimal.NewFromInt(500000),
		MinExperienceYears:     2,
		RequiredCertifications: []string{"ISO 9001", "Safety Certification"},
		MinReferences:          2,
		RequiredLocation:       "Local",
		ValidityWindow:         90 * 24 * time.Hour,
	}
}
