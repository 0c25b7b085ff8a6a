package settings

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"timeitin-backend/internal/apperr"
)

type Service struct {
	store ClockinStore
	log   *zap.Logger
}

func NewService(conn *sql.DB, log *zap.Logger) *Service {
	return &Service{store: NewStore(conn), log: log}
}

func (s *Service) Get(ctx context.Context, tenantID string) (Clockin, error) {
	c, err := s.store.Get(ctx, tenantID)
	if err != nil {
		return Clockin{}, apperr.Unavailable("settings read failed")
	}
	if c == nil {
		return Clockin{}, apperr.NotFound("tenant not found")
	}
	return *c, nil
}

func (s *Service) Update(ctx context.Context, tenantID string, c Clockin) (Clockin, error) {
	if err := c.Validate(); err != nil {
		return Clockin{}, err
	}

	// MySQL reports zero affected rows for a no-op update, so existence is
	// checked separately instead of from RowsAffected.
	existing, err := s.store.Get(ctx, tenantID)
	if err != nil {
		return Clockin{}, apperr.Unavailable("settings read failed")
	}
	if existing == nil {
		return Clockin{}, apperr.NotFound("tenant not found")
	}

	if _, err := s.store.Update(ctx, tenantID, c); err != nil {
		return Clockin{}, apperr.Unavailable("settings write failed")
	}

	s.log.Info("clock-in settings updated",
		zap.String("tenant_id", tenantID),
		zap.Int("round_time_minutes", c.RoundTimeMinutes),
		zap.Int("time_between_minutes", c.TimeBetweenMinutes),
	)
	return c, nil
}
