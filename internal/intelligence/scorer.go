package intelligence

import "context"

// ScoreRequest carries the scoring-relevant slice of a bid handed to the
// model. Nothing else leaves the process.
type ScoreRequest struct {
	BidId                string  `json:"bid_id"`
	ServiceLevel         string  `json:"service_level"`
	SetupCost            float64 `json:"setup_cost"`
	RegulatoryCompliance bool    `json:"regulatory_compliance"`
	EquipmentCount       int     `json:"equipment_count"`
}

// Scorer is the AI collaborator contract. Implementations may fail for any
// reason (timeout, malformed model output); callers fall back to the
// deterministic calculator and must never block a submission on this path.
type Scorer interface {
	Score(ctx context.Context, req ScoreRequest) (float64, error)
	GenerateInsight(ctx context.Context, bid map[string]interface{}) (map[string]interface{}, error)
}
