package evaluation

import (
	"fmt"
	"strings"

	"bidwise-api/internal/entity"
)

// Verdict is the result of a qualification check. An empty Reasons list means
// the bidder is eligible; any reason makes the bidder ineligible. There is no
// partial or conditional tier.
type Verdict struct {
	Reasons []string
}

func (v Verdict) Eligible() bool {
	return len(v.Reasons) == 0
}

// CheckEligibility evaluates every qualification rule against the bidder and
// collects all failures in one pass, so a bidder sees the full list of
// deficiencies rather than the first one. Reason order is fixed:
// registration, turnover, experience, certifications, tax clearance,
// references, location.
func CheckEligibility(b *entity.Bidder, p QualificationPolicy) Verdict {
	var reasons []string

	if !b.Registered {
		reasons = append(reasons, fmt.Sprintf("Bidder %s is not registered.", b.Name))
	}

	if b.Turnover.LessThan(p.MinTurnover) {
		reasons = append(reasons, fmt.Sprintf("Bidder %s does not meet the financial turnover requirement.", b.Name))
	}

	if b.ExperienceYears < p.MinExperienceYears {
		reasons = append(reasons, fmt.Sprintf("Bidder %s lacks the required experience.", b.Name))
	}

	if missing := missingCertifications(b.Certifications, p.RequiredCertifications); len(missing) > 0 {
		reasons = append(reasons, fmt.Sprintf("Bidder %s is missing required certifications: %s.", b.Name, strings.Join(missing, ", ")))
	}

	if !b.TaxClearance {
		reasons = append(reasons, fmt.Sprintf("Bidder %s does not have tax clearance.", b.Name))
	}

	if len(b.References) < p.MinReferences {
		reasons = append(reasons, fmt.Sprintf("Bidder %s must provide at least %d references.", b.Name, p.MinReferences))
	}

	if b.Location != p.RequiredLocation {
		reasons = append(reasons, fmt.Sprintf("Bidder %s must have a local presence.", b.Name))
	}

	return Verdict{Reasons: reasons}
}

// missingCertifications returns the required certifications the bidder lacks,
// preserving the order of the required list so reason text is stable.
func missingCertifications(held []string, required []string) []string {
	heldSet := make(map[string]struct{}, len(held))
	for _, c := range held {
		heldSet[c] = struct{}{}
	}

	var missing []string
	for _, c := range required {
		if _, ok := heldSet[c]; !ok {
			missing = append(missing, c)
		}
	}

	return missing
}
