package service

import (
	"context"
	"encoding/json"

	"bidwise-api/internal/entity"
	"bidwise-api/internal/evaluation"
	"bidwise-api/internal/intelligence"
	"bidwise-api/internal/repo"

	"go.uber.org/zap"
)

type Diagnostics interface {
	Ping() error
}

type Submission interface {
	RegisterBidder(ctx context.Context, input *entity.CreateBidderInput) (*entity.BidderOutputModel, error)
	GetBidderById(ctx context.Context, bidderId string) (*entity.BidderOutputModel, error)

	Submit(ctx context.Context, input *entity.SubmitBidInput) (*entity.SubmissionOutcome, error)
	GetBidById(ctx context.Context, bidId string) (*entity.BidOutputModel, error)
	GetBids(ctx context.Context, projectId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)
}

type Ranking interface {
	RankProjectBids(ctx context.Context, projectId string, pg *entity.PaginationInput) ([]entity.RankedBidOutputModel, error)
	RankDocuments(docs []map[string]interface{}) []map[string]interface{}
}

type Insight interface {
	ScoreBid(ctx context.Context, bidId string) (*AIScoreResult, error)
	MergeInsight(ctx context.Context, bidId string, raw json.RawMessage) error
	AnalyzeBids(ctx context.Context, docs []map[string]interface{}) ([]map[string]interface{}, error)
}

type Services struct {
	Diagnostics Diagnostics
	Submission  Submission
	Ranking     Ranking
	Insight     Insight
}

// Deps carries every collaborator the workflows need. Scorer may be nil, in
// which case the AI paths report themselves skipped or unavailable.
type Deps struct {
	Repos  *repo.Repositories
	Scorer intelligence.Scorer
	Policy evaluation.QualificationPolicy
	Clock  Clock
	IDs    IDGenerator
	Logger *zap.Logger
}

func NewServices(deps Deps) *Services {
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.IDs == nil {
		deps.IDs = UUIDGenerator{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Services{
		Diagnostics: NewDiagnosticsService(deps.Repos),
		Submission:  NewSubmissionService(deps),
		Ranking:     NewRankingService(deps),
		Insight:     NewInsightService(deps),
	}
}
