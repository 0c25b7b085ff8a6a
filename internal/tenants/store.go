package tenants

import (
	"context"
	"database/sql"
	"errors"

	"timeitin-backend/internal/settings"
)

type Tenant struct {
	ID           string
	Email        string
	PasswordHash string
	PincodeHash  string
	Clockin      settings.Clockin
	IsDisabled   bool
	CreatedAt    string
}

type TenantStore interface {
	GetByID(ctx context.Context, id string) (*Tenant, error)
	GetByEmail(ctx context.Context, email string) (*Tenant, error)
	Create(ctx context.Context, t *Tenant) error
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) TenantStore {
	return &Store{db: db}
}

func (s *Store) GetByID(ctx context.Context, id string) (*Tenant, error) {
	const q = `
SELECT tenant_id, email, password_hash, pincode_hash, round_time_minutes, time_between_minutes, is_disabled, created_at
FROM tenants
WHERE tenant_id = ?
LIMIT 1
`
	return s.scanOne(s.db.QueryRowContext(ctx, q, id))
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*Tenant, error) {
	const q = `
SELECT tenant_id, email, password_hash, pincode_hash, round_time_minutes, time_between_minutes, is_disabled, created_at
FROM tenants
WHERE email = ?
LIMIT 1
`
	return s.scanOne(s.db.QueryRowContext(ctx, q, email))
}

func (s *Store) scanOne(row *sql.Row) (*Tenant, error) {
	var t Tenant
	var isDisabledInt int
	err := row.Scan(
		&t.ID,
		&t.Email,
		&t.PasswordHash,
		&t.PincodeHash,
		&t.Clockin.RoundTimeMinutes,
		&t.Clockin.TimeBetweenMinutes,
		&isDisabledInt,
		&t.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if isDisabledInt != 0 {
		t.IsDisabled = true
	}
	return &t, nil
}

func (s *Store) Create(ctx context.Context, t *Tenant) error {
	const q = `
INSERT INTO tenants (tenant_id, email, password_hash, pincode_hash, round_time_minutes, time_between_minutes, is_disabled, created_at)
VALUES (?, ?, ?, ?, ?, ?, 0, NOW(6))
`
	_, err := s.db.ExecContext(ctx, q,
		t.ID, t.Email, t.PasswordHash, t.PincodeHash,
		t.Clockin.RoundTimeMinutes, t.Clockin.TimeBetweenMinutes,
	)
	return err
}
