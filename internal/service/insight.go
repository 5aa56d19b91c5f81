package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bidwise-api/internal/evaluation"
	"bidwise-api/internal/intelligence"
	"bidwise-api/internal/repo"
	"bidwise-api/internal/repo/repoerrs"

	"go.uber.org/zap"
)

// AIScoreResult reports one AI scoring pass. When the AI path is skipped the
// deterministic baseline stands in for it and SkipReason says why, so callers
// can tell a model score from a fallback.
type AIScoreResult struct {
	BidId         string   `json:"bidId"`
	AIScore       float64  `json:"aiScore"`
	BaselineScore *float64 `json:"baselineScore,omitempty"`
	AISkipped     bool     `json:"aiSkipped"`
	SkipReason    string   `json:"skipReason,omitempty"`
}

type InsightService struct {
	bidRepo repo.Bid
	scorer  intelligence.Scorer
	logger  *zap.Logger
}

func NewInsightService(deps Deps) *InsightService {
	return &InsightService{
		bidRepo: deps.Repos.Bid,
		scorer:  deps.Scorer,
		logger:  deps.Logger,
	}
}

// ScoreBid asks the AI collaborator for a supplementary score and persists
// it. A failed or absent collaborator never fails the call: the result falls
// back to the deterministic score and marks the substitution, but nothing is
// stored under the AI score, so ranking sees a skipped pass exactly like a
// bid that was never AI-scored.
func (s *InsightService) ScoreBid(ctx context.Context, bidId string) (*AIScoreResult, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, mapStorageError(err)
	}

	if bid.BidScore == nil {
		baseline := float64(evaluation.CalculateScore(bid))
		bid.BidScore = &baseline
	}

	result := &AIScoreResult{
		BidId:         bid.Id.String(),
		BaselineScore: bid.BidScore,
	}

	if s.scorer == nil {
		result.AIScore = *bid.BidScore
		result.AISkipped = true
		result.SkipReason = "ai scoring not configured"
	} else {
		score, err := s.scorer.Score(ctx, intelligence.ScoreRequest{
			BidId:                bid.Id.String(),
			ServiceLevel:         bid.ServiceRequirements.ServiceLevel,
			SetupCost:            bid.Costs.SetupCost.InexactFloat64(),
			RegulatoryCompliance: bid.ComplianceDetails.RegulatoryCompliance,
			EquipmentCount:       len(bid.TechnicalSpecification.EquipmentDetails),
		})
		if err != nil {
			s.logger.Warn("ai scoring failed, falling back to calculated score",
				zap.String("bid", bid.Id.String()),
				zap.Error(err))

			result.AIScore = *bid.BidScore
			result.AISkipped = true
			result.SkipReason = err.Error()
		} else {
			result.AIScore = score
		}
	}

	fields := map[string]interface{}{
		"bid_score": *bid.BidScore,
	}
	if !result.AISkipped {
		fields["ai_score"] = result.AIScore
	}
	if _, err := s.bidRepo.UpdateBid(ctx, bidId, fields); err != nil {
		return nil, mapStorageError(err)
	}

	return result, nil
}

// MergeInsight attaches an externally produced insight document to a bid.
// Only a JSON object is accepted; arrays, scalars and error envelopes with
// nothing else in them are rejected before anything is written.
func (s *InsightService) MergeInsight(ctx context.Context, bidId string, raw json.RawMessage) error {
	insight, err := validateInsight(raw)
	if err != nil {
		return err
	}

	// Bound as text: lib/pq hex-encodes []byte parameters, which Postgres
	// rejects for jsonb columns.
	updated, err := s.bidRepo.UpdateBid(ctx, bidId, map[string]interface{}{
		"insight": string(raw),
	})
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return ErrBidNotFound
		}

		return mapStorageError(err)
	}
	if updated == 0 {
		return ErrBidNotFound
	}

	s.logger.Info("insight merged",
		zap.String("bid", bidId),
		zap.Int("fields", len(insight)))

	return nil
}

// AnalyzeBids produces an insight document per input bid. A failure on one
// bid yields an error entry in its slot and the batch continues; identifying
// fields are carried over so the entry can be matched back to its bid.
func (s *InsightService) AnalyzeBids(ctx context.Context, docs []map[string]interface{}) ([]map[string]interface{}, error) {
	if s.scorer == nil {
		return nil, ErrScoringUnavailable
	}

	out := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		insight, err := s.scorer.GenerateInsight(ctx, doc)
		if err != nil {
			s.logger.Warn("insight generation failed",
				zap.String("bid", documentField(doc, "bid_id")),
				zap.Error(err))

			out = append(out, map[string]interface{}{
				"error":      fmt.Sprintf("Failed to generate insight: %v", err),
				"project_id": documentField(doc, "project_id"),
				"bidder_id":  documentField(doc, "bidder_id"),
				"bid_id":     documentField(doc, "bid_id"),
			})
			continue
		}

		out = append(out, insight)
	}

	return out, nil
}

func validateInsight(raw json.RawMessage) (map[string]interface{}, error) {
	var insight map[string]interface{}
	if err := json.Unmarshal(raw, &insight); err != nil {
		return nil, fmt.Errorf("%w: insight must be a JSON object", ErrMalformedInsight)
	}
	if len(insight) == 0 {
		return nil, fmt.Errorf("%w: insight is empty", ErrMalformedInsight)
	}
	if _, failed := insight["error"]; failed && len(insight) == 1 {
		return nil, fmt.Errorf("%w: insight carries only an error", ErrMalformedInsight)
	}

	return insight, nil
}

func documentField(doc map[string]interface{}, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}

	return "UNKNOWN"
}
