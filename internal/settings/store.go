package settings

import (
	"context"
	"database/sql"
	"errors"

	"timeitin-backend/internal/platform/db"
)

type ClockinStore interface {
	Get(ctx context.Context, tenantID string) (*Clockin, error)
	Update(ctx context.Context, tenantID string, c Clockin) (int64, error)
}

type Store struct{ db db.DBTX }

func NewStore(conn db.DBTX) ClockinStore { return &Store{db: conn} }

// Get returns nil when the tenant does not exist.
func (s *Store) Get(ctx context.Context, tenantID string) (*Clockin, error) {
	const q = `
SELECT round_time_minutes, time_between_minutes
FROM tenants
WHERE tenant_id = ?
LIMIT 1
`
	var c Clockin
	err := s.db.QueryRowContext(ctx, q, tenantID).Scan(&c.RoundTimeMinutes, &c.TimeBetweenMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) Update(ctx context.Context, tenantID string, c Clockin) (int64, error) {
	const q = `
UPDATE tenants
SET round_time_minutes = ?, time_between_minutes = ?
WHERE tenant_id = ?
`
	res, err := s.db.ExecContext(ctx, q, c.RoundTimeMinutes, c.TimeBetweenMinutes, tenantID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
