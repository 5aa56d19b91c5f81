package service

import (
	"time"

	"bidwise-api/internal/entity"
)

func mapBidder(b *entity.Bidder) *entity.BidderOutputModel {
	bidIds := make([]string, 0, len(b.BidIds))
	for _, id := range b.BidIds {
		bidIds = append(bidIds, id.String())
	}

	return &entity.BidderOutputModel{
		Id:              b.Id.String(),
		Name:            b.Name,
		Registered:      b.Registered,
		Turnover:        b.Turnover.String(),
		ExperienceYears: b.ExperienceYears,
		References:      b.References,
		Certifications:  b.Certifications,
		TaxClearance:    b.TaxClearance,
		Location:        b.Location,
		BidIds:          bidIds,
		CreatedAt:       b.CreatedAt,
	}
}

func mapBid(b *entity.Bid) *entity.BidOutputModel {
	return &entity.BidOutputModel{
		Id:             b.Id.String(),
		ProjectId:      b.ProjectId,
		BidderId:       b.BidderId.String(),
		BidAmount:      b.BidAmount.String(),
		ServiceLevel:   b.ServiceRequirements.ServiceLevel,
		SetupCost:      b.Costs.SetupCost.String(),
		Compliant:      b.ComplianceDetails.RegulatoryCompliance,
		Status:         b.Status,
		BidScore:       b.BidScore,
		AIScore:        b.AIScore,
		Feedback:       b.Feedback,
		SubmissionDate: b.SubmissionDate.Format(time.RFC3339),
		ValidUntil:     b.ValidUntil.Format(time.RFC3339),
	}
}

func mapBids(bids []entity.Bid) []entity.BidOutputModel {
	out := make([]entity.BidOutputModel, 0, len(bids))
	for i := range bids {
		out = append(out, *mapBid(&bids[i]))
	}

	return out
}
