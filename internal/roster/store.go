package roster

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"timeitin-backend/internal/platform/db"
)

type EmployeeStore interface {
	ListByTenant(ctx context.Context, tenantID string) ([]Employee, error)
	Exists(ctx context.Context, tenantID, employeeID string) (bool, error)
	Insert(ctx context.Context, e *Employee) error
	ReplaceAll(ctx context.Context, tenantID string, employees []Employee) error
	Delete(ctx context.Context, tenantID string, ids []string) (int64, error)
}

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) EmployeeStore { return &Store{db: conn} }

func (s *Store) ListByTenant(ctx context.Context, tenantID string) ([]Employee, error) {
	const q = `
SELECT employee_id, tenant_id, first_name, last_name, start_date
FROM employees
WHERE tenant_id = ?
ORDER BY last_name ASC, first_name ASC, employee_id ASC
`
	rows, err := s.db.QueryContext(ctx, q, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var r employeeRow
		if err := rows.Scan(&r.ID, &r.TenantID, &r.FirstName, &r.LastName, &r.StartDate); err != nil {
			return nil, err
		}
		out = append(out, r.toModel())
	}
	return out, rows.Err()
}

func (s *Store) Exists(ctx context.Context, tenantID, employeeID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
SELECT 1 FROM employees
WHERE tenant_id = ? AND employee_id = ? LIMIT 1`, tenantID, employeeID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Insert(ctx context.Context, e *Employee) error {
	const q = `
INSERT INTO employees (employee_id, tenant_id, first_name, last_name, start_date, created_at)
VALUES (?, ?, ?, ?, ?, NOW(6))
`
	_, err := s.db.ExecContext(ctx, q, e.ID, e.TenantID, e.FirstName, e.LastName, e.StartDate.Format("2006-01-02"))
	return err
}

// ReplaceAll overwrites the submitted records in one transaction. An id that
// does not belong to the tenant fails the whole batch.
func (s *Store) ReplaceAll(ctx context.Context, tenantID string, employees []Employee) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		const q = `
UPDATE employees
SET first_name = ?, last_name = ?, start_date = ?
WHERE tenant_id = ? AND employee_id = ?
`
		for i := range employees {
			e := &employees[i]

			var one int
			err := tx.QueryRowContext(ctx,
				`SELECT 1 FROM employees WHERE tenant_id = ? AND employee_id = ? LIMIT 1`,
				tenantID, e.ID,
			).Scan(&one)
			if errors.Is(err, sql.ErrNoRows) {
				return ErrUnknownEmployee
			}
			if err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx, q,
				e.FirstName, e.LastName, e.StartDate.Format("2006-01-02"),
				tenantID, e.ID,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the given ids. Ledger rows are left in place on purpose:
// history stays readable after an employee leaves.
func (s *Store) Delete(ctx context.Context, tenantID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	q := `DELETE FROM employees WHERE tenant_id = ? AND employee_id IN (` + placeholders + `)`

	args := make([]any, 0, len(ids)+1)
	args = append(args, tenantID)
	for _, id := range ids {
		args = append(args, id)
	}

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
