package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bidwise-api/internal/entity"
	"bidwise-api/internal/evaluation"
	"bidwise-api/internal/intelligence"
	"bidwise-api/internal/repo"
	"bidwise-api/internal/repo/repoerrs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type fakeBidderRepo struct {
	bidders     map[string]*entity.Bidder
	submissions int
	failWith    error
}

func newFakeBidderRepo(bidders ...*entity.Bidder) *fakeBidderRepo {
	r := &fakeBidderRepo{bidders: make(map[string]*entity.Bidder)}
	for _, b := range bidders {
		r.bidders[b.Id.String()] = b
	}

	return r
}

func (r *fakeBidderRepo) CreateBidder(_ context.Context, input *entity.CreateBidderInput) (uuid.UUID, error) {
	if r.failWith != nil {
		return uuid.Nil, r.failWith
	}

	b := &entity.Bidder{
		Id:              uuid.New(),
		Name:            input.Name,
		Registered:      input.Registered,
		Turnover:        input.Turnover,
		ExperienceYears: input.ExperienceYears,
		References:      input.References,
		Certifications:  input.Certifications,
		TaxClearance:    input.TaxClearance,
		Location:        input.Location,
	}
	r.bidders[b.Id.String()] = b

	return b.Id, nil
}

func (r *fakeBidderRepo) GetBidderById(_ context.Context, id string) (*entity.Bidder, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}

	b, ok := r.bidders[id]
	if !ok {
		return nil, repoerrs.ErrNotFound
	}

	return b, nil
}

func (r *fakeBidderRepo) RecordSubmission(_ context.Context, bidderId uuid.UUID, bidId uuid.UUID) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.submissions++

	return nil
}

type fakeBidRepo struct {
	bids     map[string]*entity.Bid
	puts     int
	updates  []map[string]interface{}
	failPut  error
	failWith error
}

func newFakeBidRepo(bids ...*entity.Bid) *fakeBidRepo {
	r := &fakeBidRepo{bids: make(map[string]*entity.Bid)}
	for _, b := range bids {
		r.bids[b.Id.String()] = b
	}

	return r
}

func (r *fakeBidRepo) Put(_ context.Context, bid *entity.Bid) (uuid.UUID, error) {
	if r.failPut != nil {
		return uuid.Nil, r.failPut
	}
	r.puts++
	r.bids[bid.Id.String()] = bid

	return bid.Id, nil
}

func (r *fakeBidRepo) GetBidById(_ context.Context, id string) (*entity.Bid, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}

	b, ok := r.bids[id]
	if !ok {
		return nil, repoerrs.ErrNotFound
	}

	return b, nil
}

func (r *fakeBidRepo) ListBids(_ context.Context, projectId string, _ *entity.PaginationInput) ([]entity.Bid, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}

	var out []entity.Bid
	for _, b := range r.bids {
		if projectId == "" || b.ProjectId == projectId {
			out = append(out, *b)
		}
	}

	return out, nil
}

func (r *fakeBidRepo) UpdateBid(_ context.Context, id string, fields map[string]interface{}) (int64, error) {
	if r.failWith != nil {
		return 0, r.failWith
	}
	if _, ok := r.bids[id]; !ok {
		return 0, nil
	}
	r.updates = append(r.updates, fields)

	return 1, nil
}

type fakeScorer struct {
	score    float64
	insight  map[string]interface{}
	failWith error
	requests []intelligence.ScoreRequest
}

func (s *fakeScorer) Score(_ context.Context, req intelligence.ScoreRequest) (float64, error) {
	s.requests = append(s.requests, req)
	if s.failWith != nil {
		return 0, s.failWith
	}

	return s.score, nil
}

func (s *fakeScorer) GenerateInsight(_ context.Context, bid map[string]interface{}) (map[string]interface{}, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	if s.insight != nil {
		return s.insight, nil
	}

	return map[string]interface{}{"summary": fmt.Sprintf("insight for %v", bid["bid_id"])}, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixedIDs struct{ id uuid.UUID }

func (g fixedIDs) NewID() uuid.UUID { return g.id }

func testDeps(bidders *fakeBidderRepo, bids *fakeBidRepo, scorer intelligence.Scorer) Deps {
	return Deps{
		Repos: &repo.Repositories{
			Bidder: bidders,
			Bid:    bids,
		},
		Scorer: scorer,
		Policy: evaluation.DefaultQualificationPolicy(),
		Clock:  fixedClock{now: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)},
		IDs:    fixedIDs{id: uuid.MustParse("0f0e0d0c-0b0a-0908-0706-050403020100")},
		Logger: zap.NewNop(),
	}
}

func qualifiedBidder() *entity.Bidder {
	return &entity.Bidder{
		Id:              uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name:            "NetServe Ltd",
		Registered:      true,
		Turnover:        decimal.NewFromInt(750000),
		ExperienceYears: 5,
		References:      []string{"City Council", "Harbor Authority"},
		Certifications:  []string{"ISO 9001", "Safety Certification"},
		TaxClearance:    true,
		Location:        "Local",
	}
}

func premiumBidInput(bidderId string) *entity.SubmitBidInput {
	return &entity.SubmitBidInput{
		BidderId:  bidderId,
		ProjectId: "metro-fiber-2024",
		BidAmount: decimal.NewFromInt(250000),
		ServiceRequirements: entity.ServiceRequirements{
			MinimumBandwidth: 1000,
			LatencyMs:        5,
			Reliability:      99.99,
			ServiceLevel:     "premium",
		},
		Costs: entity.CostBreakdown{
			SetupCost:            decimal.NewFromInt(15000),
			MonthlyRecurringCost: decimal.NewFromInt(4000),
			MaintenanceCost:      decimal.NewFromInt(800),
			Currency:             "USD",
		},
		TechnicalSpecification: entity.TechnicalSpecification{
			Technology:              "fiber",
			ImplementationTimeframe: 90,
			EquipmentDetails:        []string{"router", "switch", "firewall"},
		},
		ComplianceDetails: entity.ComplianceDetails{
			LicensesHeld:         []string{"telecom-operator"},
			RegulatoryCompliance: true,
		},
	}
}

func rawInsight(v interface{}) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return raw
}
