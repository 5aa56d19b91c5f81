package pgdb

import (
	"fmt"

	"bidwise-api/internal/repo/repoerrs"
	"bidwise-api/pkg/postgres"
)

type DiagnosticsRepo struct {
	*postgres.Postgres
}

func NewDiagnosticsRepo(pgdb *postgres.Postgres) *DiagnosticsRepo {
	return &DiagnosticsRepo{pgdb}
}

func (r *DiagnosticsRepo) Ping() error {
	if err := r.Database.Ping(); err != nil {
		return fmt.Errorf("%w: %v", repoerrs.ErrUnavailable, err)
	}

	return nil
}
