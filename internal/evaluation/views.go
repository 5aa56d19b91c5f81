package evaluation

import (
	"bidwise-api/internal/entity"

	"github.com/shopspring/decimal"
)

// BidView adapts a full bid record to the ranking view.
type BidView struct {
	bid *entity.Bid
}

func NewBidView(b *entity.Bid) BidView {
	return BidView{bid: b}
}

func (v BidView) BidAmount() decimal.Decimal {
	return v.bid.BidAmount
}

func (v BidView) ServiceLevel() string {
	return v.bid.ServiceRequirements.ServiceLevel
}

func (v BidView) RegulatoryCompliant() bool {
	return v.bid.ComplianceDetails.RegulatoryCompliance
}

func (v BidView) BaselineScore() (float64, bool) {
	if v.bid.BidScore == nil {
		return 0, false
	}

	return *v.bid.BidScore, true
}

func (v BidView) AIScore() (float64, bool) {
	if v.bid.AIScore == nil {
		return 0, false
	}

	return *v.bid.AIScore, true
}

func (v BidView) Record() *entity.Bid {
	return v.bid
}

// Document is a loosely shaped bid representation, as decoded from a JSON
// document batch. Field lookups follow the storage key names; anything absent
// or of an unexpected type falls back to the ranking defaults.
type Document map[string]interface{}

func (d Document) BidAmount() decimal.Decimal {
	if amount, ok := documentNumber(d["bid_amount"]); ok {
		return decimal.NewFromFloat(amount)
	}

	return decimal.Zero
}

func (d Document) ServiceLevel() string {
	if level, ok := documentSection(d, "service_requirements")["service_level"].(string); ok {
		return level
	}

	return ""
}

func (d Document) RegulatoryCompliant() bool {
	if compliant, ok := documentSection(d, "compliance_details")["regulatory_compliance"].(bool); ok {
		return compliant
	}

	return false
}

func (d Document) BaselineScore() (float64, bool) {
	return documentNumber(d["bid_score"])
}

func (d Document) AIScore() (float64, bool) {
	return documentNumber(d["ai_score"])
}

func documentSection(d Document, key string) map[string]interface{} {
	if section, ok := d[key].(map[string]interface{}); ok {
		return section
	}

	return nil
}

// documentNumber accepts the numeric shapes encoding/json and manual
// construction produce.
func documentNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}

	return 0, false
}
