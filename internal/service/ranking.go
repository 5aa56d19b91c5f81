package service

import (
	"context"

	"bidwise-api/internal/entity"
	"bidwise-api/internal/evaluation"
	"bidwise-api/internal/repo"

	"go.uber.org/zap"
)

type RankingService struct {
	bidRepo repo.Bid
	logger  *zap.Logger
}

func NewRankingService(deps Deps) *RankingService {
	return &RankingService{
		bidRepo: deps.Repos.Bid,
		logger:  deps.Logger,
	}
}

// RankProjectBids loads a project's bids and returns them ordered by rank
// score, highest first. Rank scores are computed on the fly and never
// persisted.
func (s *RankingService) RankProjectBids(ctx context.Context, projectId string, pg *entity.PaginationInput) ([]entity.RankedBidOutputModel, error) {
	bids, err := s.bidRepo.ListBids(ctx, projectId, pg)
	if err != nil {
		return nil, mapStorageError(err)
	}

	views := make([]evaluation.RankableBid, 0, len(bids))
	for i := range bids {
		views = append(views, evaluation.NewBidView(&bids[i]))
	}

	ranked := evaluation.Rank(views)

	out := make([]entity.RankedBidOutputModel, 0, len(ranked))
	for _, r := range ranked {
		view := r.Bid.(evaluation.BidView)
		out = append(out, entity.RankedBidOutputModel{
			BidOutputModel: *mapBid(view.Record()),
			RankScore:      r.RankScore,
		})
	}

	s.logger.Debug("ranked project bids",
		zap.String("project", projectId),
		zap.Int("count", len(out)))

	return out, nil
}

// RankDocuments ranks loosely shaped bid documents, for callers that hold
// bids outside the store. Each returned document is a shallow copy of the
// input annotated with its rank score under "rank_score"; inputs are not
// mutated.
func (s *RankingService) RankDocuments(docs []map[string]interface{}) []map[string]interface{} {
	views := make([]evaluation.RankableBid, 0, len(docs))
	for _, d := range docs {
		views = append(views, evaluation.Document(d))
	}

	ranked := evaluation.Rank(views)

	out := make([]map[string]interface{}, 0, len(ranked))
	for _, r := range ranked {
		doc := r.Bid.(evaluation.Document)
		annotated := make(map[string]interface{}, len(doc)+1)
		for k, v := range doc {
			annotated[k] = v
		}
		annotated["rank_score"] = r.RankScore

		out = append(out, annotated)
	}

	return out
}
