package ledger

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"timeitin-backend/internal/platform/db"
)

// LedgerStore is the persistence contract the service runs against. apply in
// RecordPunch is invoked with the current interval (nil when absent) while
// the row is locked; returning an error aborts without writing.
type LedgerStore interface {
	MonthEntries(ctx context.Context, tenantID string, month MonthKey) (map[DayKey]map[string]ClockInterval, error)
	DayEntries(ctx context.Context, tenantID string, day DayKey) (map[string]ClockInterval, error)
	RecordPunch(ctx context.Context, tenantID string, month MonthKey, day DayKey, employeeID string,
		apply func(existing *ClockInterval) (ClockInterval, error)) (ClockInterval, error)
	ReplaceDayEntries(ctx context.Context, tenantID string, month MonthKey, day DayKey, entries []ClockInterval) error
}

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) LedgerStore { return &Store{db: conn} }

type intervalRow struct {
	DayKey     string
	EmployeeID string
	StartTime  time.Time
	EndTime    sql.NullTime
}

func (r intervalRow) toModel() ClockInterval {
	ci := ClockInterval{
		EmployeeID: r.EmployeeID,
		StartTime:  r.StartTime.UTC(),
	}
	if r.EndTime.Valid {
		end := r.EndTime.Time.UTC()
		ci.EndTime = &end
	}
	return ci
}

func (s *Store) MonthEntries(ctx context.Context, tenantID string, month MonthKey) (map[DayKey]map[string]ClockInterval, error) {
	const q = `
SELECT day_key, employee_id, start_time, end_time
FROM clock_intervals
WHERE tenant_id = ? AND month_key = ?
ORDER BY day_key ASC, employee_id ASC
`
	rows, err := s.db.QueryContext(ctx, q, tenantID, string(month))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[DayKey]map[string]ClockInterval)
	for rows.Next() {
		var r intervalRow
		if err := rows.Scan(&r.DayKey, &r.EmployeeID, &r.StartTime, &r.EndTime); err != nil {
			return nil, err
		}
		day := DayKey(r.DayKey)
		if out[day] == nil {
			out[day] = make(map[string]ClockInterval)
		}
		out[day][r.EmployeeID] = r.toModel()
	}
	return out, rows.Err()
}

func (s *Store) DayEntries(ctx context.Context, tenantID string, day DayKey) (map[string]ClockInterval, error) {
	const q = `
SELECT day_key, employee_id, start_time, end_time
FROM clock_intervals
WHERE tenant_id = ? AND day_key = ?
`
	rows, err := s.db.QueryContext(ctx, q, tenantID, string(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]ClockInterval)
	for rows.Next() {
		var r intervalRow
		if err := rows.Scan(&r.DayKey, &r.EmployeeID, &r.StartTime, &r.EndTime); err != nil {
			return nil, err
		}
		out[r.EmployeeID] = r.toModel()
	}
	return out, rows.Err()
}

// RecordPunch runs the read-decide-write cycle of one punch inside a single
// transaction, locking the (tenant, day, employee) row so two concurrent
// punches for the same slot serialize instead of racing.
func (s *Store) RecordPunch(ctx context.Context, tenantID string, month MonthKey, day DayKey, employeeID string,
	apply func(existing *ClockInterval) (ClockInterval, error)) (ClockInterval, error) {

	var out ClockInterval
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		existing, err := getIntervalForUpdateTx(ctx, tx, tenantID, day, employeeID)
		if err != nil {
			return err
		}

		next, err := apply(existing)
		if err != nil {
			return err
		}

		if err := upsertIntervalTx(ctx, tx, tenantID, month, day, next); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return ClockInterval{}, err
	}
	return out, nil
}

// ReplaceDayEntries overwrites the given slots unconditionally. Callers own
// supplying the full data for the entries they touch.
func (s *Store) ReplaceDayEntries(ctx context.Context, tenantID string, month MonthKey, day DayKey, entries []ClockInterval) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		for i := range entries {
			if err := upsertIntervalTx(ctx, tx, tenantID, month, day, entries[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// ---------- tx helpers ----------

func getIntervalForUpdateTx(ctx context.Context, tx db.DBTX, tenantID string, day DayKey, employeeID string) (*ClockInterval, error) {
	const q = `
SELECT day_key, employee_id, start_time, end_time
FROM clock_intervals
WHERE tenant_id = ? AND day_key = ? AND employee_id = ?
LIMIT 1
FOR UPDATE
`
	var r intervalRow
	err := tx.QueryRowContext(ctx, q, tenantID, string(day), employeeID).Scan(&r.DayKey, &r.EmployeeID, &r.StartTime, &r.EndTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ci := r.toModel()
	return &ci, nil
}

func upsertIntervalTx(ctx context.Context, tx db.DBTX, tenantID string, month MonthKey, day DayKey, ci ClockInterval) error {
	const q = `
INSERT INTO clock_intervals (tenant_id, month_key, day_key, employee_id, start_time, end_time)
VALUES (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
start_time = VALUES(start_time),
end_time   = VALUES(end_time)
`
	var end any
	if ci.EndTime != nil {
		end = ci.EndTime.UTC()
	}
	_, err := tx.ExecContext(ctx, q, tenantID, string(month), string(day), ci.EmployeeID, ci.StartTime.UTC(), end)
	return err
}
