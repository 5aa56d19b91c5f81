package pgdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bidwise-api/internal/entity"
	"bidwise-api/internal/repo/repoerrs"
	"bidwise-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type BidderRepo struct {
	*postgres.Postgres
}

func NewBidderRepo(pgdb *postgres.Postgres) *BidderRepo {
	return &BidderRepo{pgdb}
}

func (r *BidderRepo) CreateBidder(ctx context.Context, input *entity.CreateBidderInput) (uuid.UUID, error) {
	industryCerts, err := json.Marshal(input.IndustryCertifications)
	if err != nil {
		return uuid.Nil, err
	}

	// industry_certifications is bound as text, not []byte, for the jsonb
	// column.
	sqlReq, args, _ := r.SqlBuilder.
		Insert("bidder").
		Columns("name", "registered", "turnover", "experience_years", "client_references",
			"certifications", "tax_clearance", "location", "industry_certifications").
		Values(input.Name, input.Registered, input.Turnover, input.ExperienceYears,
			pq.Array(input.References), pq.Array(input.Certifications),
			input.TaxClearance, input.Location, string(industryCerts)).
		Suffix("RETURNING id").
		ToSql()

	var bidderId uuid.UUID
	err = r.Database.QueryRowContext(ctx, sqlReq, args...).Scan(&bidderId)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", repoerrs.ErrUnavailable, err)
	}

	return bidderId, nil
}

func (r *BidderRepo) GetBidderById(ctx context.Context, id string) (*entity.Bidder, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repoerrs.ErrNotFound
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select("id", "name", "registered", "turnover", "experience_years", "client_references",
			"certifications", "tax_clearance", "location", "industry_certifications",
			"bid_ids", "created_at").
		From("bidder").
		Where("id = ?", uuidForm).
		ToSql()

	var (
		bidder        entity.Bidder
		references    pq.StringArray
		certs         pq.StringArray
		bidIds        pq.StringArray
		industryCerts []byte
		createdAt     time.Time
	)

	row := r.Database.QueryRowContext(ctx, sqlReq, args...)
	err = row.Scan(&bidder.Id, &bidder.Name, &bidder.Registered, &bidder.Turnover,
		&bidder.ExperienceYears, &references, &certs, &bidder.TaxClearance,
		&bidder.Location, &industryCerts, &bidIds, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repoerrs.ErrNotFound
		}

		return nil, fmt.Errorf("%w: %v", repoerrs.ErrUnavailable, err)
	}

	bidder.References = references
	bidder.Certifications = certs
	bidder.CreatedAt = createdAt.Format(time.RFC3339)

	if len(industryCerts) > 0 {
		if err := json.Unmarshal(industryCerts, &bidder.IndustryCertifications); err != nil {
			return nil, err
		}
	}

	for _, raw := range bidIds {
		bidId, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		bidder.BidIds = append(bidder.BidIds, bidId)
	}

	return &bidder, nil
}

func (r *BidderRepo) RecordSubmission(ctx context.Context, bidderId uuid.UUID, bidId uuid.UUID) error {
	sqlReq, args, _ := r.SqlBuilder.
		Update("bidder").
		Set("bid_ids", squirrel.Expr("array_append(bid_ids, ?)", bidId)).
		Where("id = ?", bidderId).
		ToSql()

	result, err := r.Database.ExecContext(ctx, sqlReq, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", repoerrs.ErrUnavailable, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repoerrs.ErrNotFound
	}

	return nil
}
