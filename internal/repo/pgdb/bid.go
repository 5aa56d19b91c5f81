package pgdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"bidwise-api/internal/entity"
	"bidwise-api/internal/repo/repoerrs"
	"bidwise-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// Columns a partial update may touch. Anything else in the field map is a
// programming error and rejected before the query is built.
var updatableBidColumns = map[string]struct{}{
	"status":    {},
	"bid_score": {},
	"ai_score":  {},
	"feedback":  {},
	"insight":   {},
}

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

func (r *BidRepo) Put(ctx context.Context, bid *entity.Bid) (uuid.UUID, error) {
	serviceReq, err := json.Marshal(bid.ServiceRequirements)
	if err != nil {
		return uuid.Nil, err
	}
	costs, err := json.Marshal(bid.Costs)
	if err != nil {
		return uuid.Nil, err
	}
	techSpec, err := json.Marshal(bid.TechnicalSpecification)
	if err != nil {
		return uuid.Nil, err
	}
	compliance, err := json.Marshal(bid.ComplianceDetails)
	if err != nil {
		return uuid.Nil, err
	}

	// JSON documents are bound as text. lib/pq hex-encodes []byte parameters
	// as bytea, which Postgres rejects for jsonb columns.
	sqlReq, args, _ := r.SqlBuilder.
		Insert("bid").
		Columns("id", "project_id", "bidder_id", "bid_amount", "service_requirements",
			"costs", "technical_specification", "compliance_details",
			"submission_date", "valid_until", "status", "bid_score", "feedback").
		Values(bid.Id, bid.ProjectId, bid.BidderId, bid.BidAmount, string(serviceReq),
			string(costs), string(techSpec), string(compliance),
			bid.SubmissionDate, bid.ValidUntil, bid.Status, bid.BidScore, bid.Feedback).
		Suffix("RETURNING id").
		ToSql()

	var bidId uuid.UUID
	err = r.Database.QueryRowContext(ctx, sqlReq, args...).Scan(&bidId)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", repoerrs.ErrUnavailable, err)
	}

	return bidId, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		// A malformed id can not address any stored bid.
		return nil, repoerrs.ErrNotFound
	}

	sqlReq, args, _ := r.bidSelect().
		Where("id = ?", uuidForm).
		ToSql()

	row := r.Database.QueryRowContext(ctx, sqlReq, args...)
	bid, err := scanBid(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repoerrs.ErrNotFound
		}

		return nil, fmt.Errorf("%w: %v", repoerrs.ErrUnavailable, err)
	}

	return bid, nil
}

func (r *BidRepo) ListBids(ctx context.Context, projectId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	builder := r.bidSelect().
		OrderBy("submission_date")

	if projectId != "" {
		builder = builder.Where("project_id = ?", projectId)
	}
	if pg != nil {
		builder = builder.Limit(uint64(pg.Limit)).Offset(uint64(pg.Offset))
	}

	sqlReq, args, _ := builder.ToSql()

	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repoerrs.ErrUnavailable, err)
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", repoerrs.ErrUnavailable, err)
		}
		bids = append(bids, *bid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", repoerrs.ErrUnavailable, err)
	}

	return bids, nil
}

func (r *BidRepo) UpdateBid(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return 0, repoerrs.ErrNotFound
	}

	for column := range fields {
		if _, ok := updatableBidColumns[column]; !ok {
			return 0, fmt.Errorf("bid column %q is not updatable", column)
		}
	}

	sqlReq, args, _ := r.SqlBuilder.
		Update("bid").
		SetMap(fields).
		Where("id = ?", uuidForm).
		ToSql()

	result, err := r.Database.ExecContext(ctx, sqlReq, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", repoerrs.ErrUnavailable, err)
	}

	return result.RowsAffected()
}

func (r *BidRepo) bidSelect() squirrel.SelectBuilder {
	return r.SqlBuilder.
		Select("id", "project_id", "bidder_id", "bid_amount", "service_requirements",
			"costs", "technical_specification", "compliance_details",
			"submission_date", "valid_until", "status", "bid_score", "ai_score",
			"feedback", "insight").
		From("bid")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBid(row rowScanner) (*entity.Bid, error) {
	var (
		bid        entity.Bid
		serviceReq []byte
		costs      []byte
		techSpec   []byte
		compliance []byte
		bidScore   sql.NullFloat64
		aiScore    sql.NullFloat64
		feedback   sql.NullString
		insight    []byte
	)

	err := row.Scan(&bid.Id, &bid.ProjectId, &bid.BidderId, &bid.BidAmount, &serviceReq,
		&costs, &techSpec, &compliance, &bid.SubmissionDate, &bid.ValidUntil,
		&bid.Status, &bidScore, &aiScore, &feedback, &insight)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(serviceReq, &bid.ServiceRequirements); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(costs, &bid.Costs); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(techSpec, &bid.TechnicalSpecification); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(compliance, &bid.ComplianceDetails); err != nil {
		return nil, err
	}

	if bidScore.Valid {
		bid.BidScore = &bidScore.Float64
	}
	if aiScore.Valid {
		bid.AIScore = &aiScore.Float64
	}
	if feedback.Valid {
		bid.Feedback = &feedback.String
	}
	if len(insight) > 0 {
		bid.Insight = json.RawMessage(insight)
	}

	return &bid, nil
}
