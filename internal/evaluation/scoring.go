package evaluation

import (
	"bidwise-api/internal/common"
	"bidwise-api/internal/entity"

	"github.com/shopspring/decimal"
)

// Additive point model. Maximum attainable score is 100, minimum is 10.
const (
	premiumServicePoints  = 30
	standardServicePoints = 20
	basicServicePoints    = 10

	costEfficientPoints = 25
	costStandardPoints  = 15

	compliancePoints = 20

	equipmentBreadthPoints = 25
	equipmentBreadthCount  = 2
)

// Setup costs strictly below this threshold earn the cost-efficiency points.
var costEfficiencyThreshold = decimal.NewFromInt(20000)

// CalculateScore computes the deterministic baseline score for a bid from its
// service tier, setup cost, regulatory compliance and equipment breadth.
// Writing the result into bid.BidScore is a documented side effect; callers
// that need pure evaluation must clone the bid first. Recomputing with
// unchanged inputs yields the same value and overwrites a stale baseline, but
// bid.AIScore is never touched here.
func CalculateScore(bid *entity.Bid) int {
	score := 0

	switch bid.ServiceRequirements.ServiceLevel {
	case common.Premium:
		score += premiumServicePoints
	case common.Standard:
		score += standardServicePoints
	default:
		score += basicServicePoints
	}

	if bid.Costs.SetupCost.LessThan(costEfficiencyThreshold) {
		score += costEfficientPoints
	} else {
		score += costStandardPoints
	}

	if bid.ComplianceDetails.RegulatoryCompliance {
		score += compliancePoints
	}

	if len(bid.TechnicalSpecification.EquipmentDetails) > equipmentBreadthCount {
		score += equipmentBreadthPoints
	}

	baseline := float64(score)
	bid.BidScore = &baseline

	return score
}
