package service

import (
	"context"
	"errors"
	"testing"

	"bidwise-api/internal/entity"
	"bidwise-api/internal/evaluation"
	"bidwise-api/internal/repo/repoerrs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightService_ScoreBid(t *testing.T) {
	bid := storedBid("metro", 250000, "premium", true, scorePtr(55), nil)
	bids := newFakeBidRepo(bid)
	scorer := &fakeScorer{score: 87.5}

	s := NewInsightService(testDeps(newFakeBidderRepo(), bids, scorer))

	result, err := s.ScoreBid(context.Background(), bid.Id.String())
	require.NoError(t, err)
	assert.Equal(t, 87.5, result.AIScore)
	assert.False(t, result.AISkipped)
	require.NotNil(t, result.BaselineScore)
	assert.Equal(t, 55.0, *result.BaselineScore)

	require.Len(t, scorer.requests, 1)
	assert.Equal(t, bid.Id.String(), scorer.requests[0].BidId)
	assert.Equal(t, "premium", scorer.requests[0].ServiceLevel)
	assert.True(t, scorer.requests[0].RegulatoryCompliance)

	require.Len(t, bids.updates, 1)
	assert.Equal(t, 87.5, bids.updates[0]["ai_score"])
	assert.Equal(t, 55.0, bids.updates[0]["bid_score"])
}

func TestInsightService_ScoreBid_FallsBackOnScorerFailure(t *testing.T) {
	bid := storedBid("metro", 250000, "premium", true, scorePtr(55), nil)
	bids := newFakeBidRepo(bid)
	scorer := &fakeScorer{failWith: errors.New("model timed out")}

	s := NewInsightService(testDeps(newFakeBidderRepo(), bids, scorer))

	result, err := s.ScoreBid(context.Background(), bid.Id.String())
	require.NoError(t, err, "a scorer failure must not fail the call")
	assert.True(t, result.AISkipped)
	assert.Equal(t, "model timed out", result.SkipReason)
	assert.Equal(t, 55.0, result.AIScore, "the calculated score stands in")

	require.Len(t, bids.updates, 1)
	assert.Equal(t, 55.0, bids.updates[0]["bid_score"])
	_, wrote := bids.updates[0]["ai_score"]
	assert.False(t, wrote, "a fallback score must not be stored as the ai score")
}

func TestInsightService_ScoreBid_SkippedPassKeepsRanking(t *testing.T) {
	failed := storedBid("metro", 100000, "premium", true, scorePtr(70), nil)
	untouched := storedBid("metro", 100000, "premium", true, scorePtr(70), nil)
	bids := newFakeBidRepo(failed, untouched)
	scorer := &fakeScorer{failWith: errors.New("model timed out")}

	s := NewInsightService(testDeps(newFakeBidderRepo(), bids, scorer))

	_, err := s.ScoreBid(context.Background(), failed.Id.String())
	require.NoError(t, err)

	require.Len(t, bids.updates, 1)
	if v, ok := bids.updates[0]["ai_score"]; ok {
		score := v.(float64)
		failed.AIScore = &score
	}

	assert.Equal(t,
		evaluation.ComputeRankScore(evaluation.NewBidView(untouched)),
		evaluation.ComputeRankScore(evaluation.NewBidView(failed)),
		"a skipped ai pass must not change the rank score")
}

func TestInsightService_ScoreBid_ComputesMissingBaseline(t *testing.T) {
	bid := &entity.Bid{
		Id:        uuid.New(),
		ProjectId: "metro",
		BidderId:  uuid.New(),
		BidAmount: decimal.NewFromInt(250000),
		ServiceRequirements: entity.ServiceRequirements{
			ServiceLevel: "basic",
		},
		Costs: entity.CostBreakdown{
			SetupCost: decimal.NewFromInt(50000),
		},
	}
	bids := newFakeBidRepo(bid)

	s := NewInsightService(testDeps(newFakeBidderRepo(), bids, nil))

	result, err := s.ScoreBid(context.Background(), bid.Id.String())
	require.NoError(t, err)
	require.NotNil(t, result.BaselineScore)
	assert.Equal(t, 25.0, *result.BaselineScore, "basic level plus costly setup")
	assert.True(t, result.AISkipped)
	assert.Equal(t, "ai scoring not configured", result.SkipReason)
}

func TestInsightService_ScoreBid_UnknownBid(t *testing.T) {
	s := NewInsightService(testDeps(newFakeBidderRepo(), newFakeBidRepo(), &fakeScorer{}))

	_, err := s.ScoreBid(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrBidNotFound)
}

func TestInsightService_MergeInsight(t *testing.T) {
	bid := storedBid("metro", 250000, "premium", true, scorePtr(55), nil)
	bids := newFakeBidRepo(bid)

	s := NewInsightService(testDeps(newFakeBidderRepo(), bids, nil))

	err := s.MergeInsight(context.Background(), bid.Id.String(), rawInsight(map[string]interface{}{
		"summary":  "strong technical proposal",
		"strength": "compliance",
	}))
	require.NoError(t, err)
	require.Len(t, bids.updates, 1)

	stored, isText := bids.updates[0]["insight"].(string)
	require.True(t, isText, "insight must reach the store as text")
	assert.Contains(t, stored, "strong technical proposal")
}

func TestInsightService_MergeInsight_RejectsMalformedPayloads(t *testing.T) {
	bid := storedBid("metro", 250000, "premium", true, nil, nil)
	bids := newFakeBidRepo(bid)

	s := NewInsightService(testDeps(newFakeBidderRepo(), bids, nil))

	for name, raw := range map[string][]byte{
		"array":          rawInsight([]string{"a", "b"}),
		"scalar":         rawInsight(42),
		"string":         rawInsight("insight"),
		"empty object":   rawInsight(map[string]interface{}{}),
		"error envelope": rawInsight(map[string]interface{}{"error": "upstream failed"}),
		"not json":       []byte("{broken"),
	} {
		t.Run(name, func(t *testing.T) {
			err := s.MergeInsight(context.Background(), bid.Id.String(), raw)
			assert.ErrorIs(t, err, ErrMalformedInsight)
		})
	}

	assert.Empty(t, bids.updates, "rejected insight must not be written")
}

func TestInsightService_MergeInsight_UnknownBid(t *testing.T) {
	s := NewInsightService(testDeps(newFakeBidderRepo(), newFakeBidRepo(), nil))

	err := s.MergeInsight(context.Background(), uuid.NewString(), rawInsight(map[string]interface{}{"summary": "x"}))
	assert.ErrorIs(t, err, ErrBidNotFound)
}

func TestInsightService_AnalyzeBids(t *testing.T) {
	scorer := &fakeScorer{insight: map[string]interface{}{"summary": "well priced"}}
	s := NewInsightService(testDeps(newFakeBidderRepo(), newFakeBidRepo(), scorer))

	out, err := s.AnalyzeBids(context.Background(), []map[string]interface{}{
		{"bid_id": "b1"},
		{"bid_id": "b2"},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "well priced", out[0]["summary"])
}

func TestInsightService_AnalyzeBids_PerBidFailures(t *testing.T) {
	scorer := &fakeScorer{failWith: errors.New("rate limited")}
	s := NewInsightService(testDeps(newFakeBidderRepo(), newFakeBidRepo(), scorer))

	out, err := s.AnalyzeBids(context.Background(), []map[string]interface{}{
		{"bid_id": "b1", "project_id": "metro", "bidder_id": "v7"},
		{},
	})
	require.NoError(t, err, "per-bid failures do not fail the batch")
	require.Len(t, out, 2)

	assert.Contains(t, out[0]["error"], "rate limited")
	assert.Equal(t, "metro", out[0]["project_id"])
	assert.Equal(t, "b1", out[0]["bid_id"])

	assert.Equal(t, "UNKNOWN", out[1]["project_id"])
	assert.Equal(t, "UNKNOWN", out[1]["bidder_id"])
	assert.Equal(t, "UNKNOWN", out[1]["bid_id"])
}

func TestInsightService_AnalyzeBids_NoScorer(t *testing.T) {
	s := NewInsightService(testDeps(newFakeBidderRepo(), newFakeBidRepo(), nil))

	_, err := s.AnalyzeBids(context.Background(), []map[string]interface{}{{"bid_id": "b1"}})
	assert.ErrorIs(t, err, ErrScoringUnavailable)

	var storageErr error = repoerrs.ErrUnavailable
	assert.ErrorIs(t, mapStorageError(storageErr), ErrStorageUnavailable)
}
