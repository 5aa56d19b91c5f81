package service

import (
	"context"
	"errors"
	"fmt"

	"bidwise-api/internal/common"
	"bidwise-api/internal/entity"
	"bidwise-api/internal/evaluation"
	"bidwise-api/internal/repo"
	"bidwise-api/internal/repo/repoerrs"

	"go.uber.org/zap"
)

// Feedback attached to every accepted bid. The wording is part of the
// submission contract and asserted by downstream consumers.
const scoringFeedback = "Bid scored based on quality of service, cost efficiency, and compliance."

type SubmissionService struct {
	bidderRepo repo.Bidder
	bidRepo    repo.Bid
	policy     evaluation.QualificationPolicy
	clock      Clock
	ids        IDGenerator
	logger     *zap.Logger
}

func NewSubmissionService(deps Deps) *SubmissionService {
	return &SubmissionService{
		bidderRepo: deps.Repos.Bidder,
		bidRepo:    deps.Repos.Bid,
		policy:     deps.Policy,
		clock:      deps.Clock,
		ids:        deps.IDs,
		logger:     deps.Logger,
	}
}

func (s *SubmissionService) RegisterBidder(ctx context.Context, input *entity.CreateBidderInput) (*entity.BidderOutputModel, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: bidder name is required", ErrValidation)
	}
	if input.Turnover.IsNegative() {
		return nil, fmt.Errorf("%w: turnover can not be negative", ErrValidation)
	}
	if input.ExperienceYears < 0 {
		return nil, fmt.Errorf("%w: experience can not be negative", ErrValidation)
	}

	bidderId, err := s.bidderRepo.CreateBidder(ctx, input)
	if err != nil {
		return nil, mapStorageError(err)
	}

	bidder, err := s.bidderRepo.GetBidderById(ctx, bidderId.String())
	if err != nil {
		return nil, mapStorageError(err)
	}

	return mapBidder(bidder), nil
}

func (s *SubmissionService) GetBidderById(ctx context.Context, bidderId string) (*entity.BidderOutputModel, error) {
	bidder, err := s.bidderRepo.GetBidderById(ctx, bidderId)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrBidderNotFound
		}

		return nil, mapStorageError(err)
	}

	return mapBidder(bidder), nil
}

// Submit runs the full intake workflow: qualification gate, bid
// construction, deterministic scoring, feedback annotation, history append
// and durable persistence. An ineligible bidder is a normal outcome carrying
// the complete reasons list; nothing is written in that case.
func (s *SubmissionService) Submit(ctx context.Context, input *entity.SubmitBidInput) (*entity.SubmissionOutcome, error) {
	if err := validateSubmitInput(input); err != nil {
		return nil, err
	}

	bidder, err := s.bidderRepo.GetBidderById(ctx, input.BidderId)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrBidderNotFound
		}

		return nil, mapStorageError(err)
	}

	verdict := evaluation.CheckEligibility(bidder, s.policy)
	if !verdict.Eligible() {
		s.logger.Info("bid submission rejected",
			zap.String("bidder", bidder.Name),
			zap.String("project", input.ProjectId),
			zap.Int("deficiencies", len(verdict.Reasons)))

		return &entity.SubmissionOutcome{Accepted: false, Reasons: verdict.Reasons}, nil
	}

	now := s.clock.Now().UTC()
	bid := &entity.Bid{
		Id:                     s.ids.NewID(),
		ProjectId:              input.ProjectId,
		BidderId:               bidder.Id,
		BidAmount:              input.BidAmount,
		ServiceRequirements:    input.ServiceRequirements,
		Costs:                  input.Costs,
		TechnicalSpecification: input.TechnicalSpecification,
		ComplianceDetails:      input.ComplianceDetails,
		SubmissionDate:         now,
		ValidUntil:             now.Add(s.policy.ValidityWindow),
		Status:                 common.Submitted,
	}

	score := evaluation.CalculateScore(bid)
	feedback := scoringFeedback
	bid.Feedback = &feedback

	// The bidder's history is appended before the durable write, so a
	// persistence failure leaves a recoverable inconsistency that has to be
	// reported, not swallowed.
	bidder.BidIds = append(bidder.BidIds, bid.Id)

	if _, err := s.bidRepo.Put(ctx, bid); err != nil {
		return nil, fmt.Errorf("bid %s accepted but not persisted: %w", bid.Id, mapStorageError(err))
	}

	if err := s.bidderRepo.RecordSubmission(ctx, bidder.Id, bid.Id); err != nil {
		return nil, fmt.Errorf("bid %s persisted but bidder history not updated: %w", bid.Id, mapStorageError(err))
	}

	s.logger.Info("bid submitted",
		zap.String("bid", bid.Id.String()),
		zap.String("bidder", bidder.Name),
		zap.String("project", bid.ProjectId),
		zap.Int("score", score))

	return &entity.SubmissionOutcome{
		Accepted: true,
		Receipt: &entity.BidReceipt{
			BidId:    bid.Id.String(),
			Score:    score,
			Feedback: feedback,
		},
	}, nil
}

func (s *SubmissionService) GetBidById(ctx context.Context, bidId string) (*entity.BidOutputModel, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, mapStorageError(err)
	}

	return mapBid(bid), nil
}

func (s *SubmissionService) GetBids(ctx context.Context, projectId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
	bids, err := s.bidRepo.ListBids(ctx, projectId, pg)
	if err != nil {
		return nil, mapStorageError(err)
	}

	return mapBids(bids), nil
}

func validateSubmitInput(input *entity.SubmitBidInput) error {
	if input.BidderId == "" {
		return fmt.Errorf("%w: bidder id is required", ErrValidation)
	}
	if input.ProjectId == "" {
		return fmt.Errorf("%w: project id is required", ErrValidation)
	}
	if input.BidAmount.IsNegative() {
		return fmt.Errorf("%w: bid amount can not be negative", ErrValidation)
	}
	if input.Costs.SetupCost.IsNegative() {
		return fmt.Errorf("%w: setup cost can not be negative", ErrValidation)
	}

	return nil
}

func mapStorageError(err error) error {
	if errors.Is(err, repoerrs.ErrUnavailable) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return err
}
