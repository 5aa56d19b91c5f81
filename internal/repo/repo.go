package repo

import (
	"context"

	"bidwise-api/internal/entity"
	"bidwise-api/internal/repo/pgdb"
	"bidwise-api/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type Bidder interface {
	CreateBidder(ctx context.Context, input *entity.CreateBidderInput) (uuid.UUID, error)
	GetBidderById(ctx context.Context, id string) (*entity.Bidder, error)
	// RecordSubmission appends a bid to the bidder's submitted-bid history.
	RecordSubmission(ctx context.Context, bidderId uuid.UUID, bidId uuid.UUID) error
}

// Bid is the document store the evaluation workflows write through. It is a
// flat collection addressed by id; Update applies a partial field set and
// reports how many records changed.
type Bid interface {
	Put(ctx context.Context, bid *entity.Bid) (uuid.UUID, error)
	GetBidById(ctx context.Context, id string) (*entity.Bid, error)
	ListBids(ctx context.Context, projectId string, pg *entity.PaginationInput) ([]entity.Bid, error)
	UpdateBid(ctx context.Context, id string, fields map[string]interface{}) (int64, error)
}

type Repositories struct {
	Diagnostics
	Bidder
	Bid
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		Bidder:      pgdb.NewBidderRepo(p),
		Bid:         pgdb.NewBidRepo(p),
	}
}
