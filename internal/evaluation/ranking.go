package evaluation

import (
	"sort"

	"bidwise-api/internal/common"

	"github.com/shopspring/decimal"
)

// RankableBid is the narrow read-only view the ranking formula needs. It lets
// the engine run over full bid records and over loosely shaped documents
// pulled straight from storage without caring which it got. Absent fields
// take the documented defaults: amount 0 (floored to 1 below), empty service
// level, non-compliant, no scores.
type RankableBid interface {
	BidAmount() decimal.Decimal
	ServiceLevel() string
	RegulatoryCompliant() bool
	// BaselineScore reports the deterministic calculator score, if one has
	// been computed.
	BaselineScore() (float64, bool)
	// AIScore reports the supplementary externally produced score, if any.
	AIScore() (float64, bool)
}

// RankedBid pairs a bid view with its transient rank score. The score exists
// only on this result; nothing on the underlying bid is mutated.
type RankedBid struct {
	Bid       RankableBid
	RankScore float64
}

const (
	premiumRankBonus    = 50.0
	complianceRankBonus = 30.0
)

var (
	costWeight    = decimal.NewFromInt(100000)
	minimumAmount = decimal.NewFromInt(1)
)

// ComputeRankScore evaluates the composite ranking formula for one bid:
// reciprocal cost weighting (lower bid amounts rank higher), a premium
// service bonus, a compliance bonus, and the additive fold of the baseline
// and AI scores. Amounts below 1 are floored to 1 so the reciprocal term
// stays defined; that floor distorts ordering for very low amounts and is a
// known property of the formula, not a data-quality signal.
func ComputeRankScore(b RankableBid) float64 {
	amount := b.BidAmount()
	if amount.LessThan(minimumAmount) {
		amount = minimumAmount
	}

	score := costWeight.Div(amount).InexactFloat64()

	if b.ServiceLevel() == common.Premium {
		score += premiumRankBonus
	}

	if b.RegulatoryCompliant() {
		score += complianceRankBonus
	}

	if s, ok := b.BaselineScore(); ok {
		score += s
	}

	if s, ok := b.AIScore(); ok {
		score += s
	}

	return score
}

// Rank orders bids by rank score, highest first. The sort is stable: bids
// with equal scores keep their input order. An empty input yields an empty
// result.
func Rank(bids []RankableBid) []RankedBid {
	ranked := make([]RankedBid, 0, len(bids))
	for _, b := range bids {
		ranked = append(ranked, RankedBid{Bid: b, RankScore: ComputeRankScore(b)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RankScore > ranked[j].RankScore
	})

	return ranked
}
