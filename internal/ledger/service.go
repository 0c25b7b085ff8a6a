package ledger

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"timeitin-backend/internal/apperr"
	"timeitin-backend/internal/settings"
)

// RosterSource answers whether an employee belongs to a tenant. Implemented
// by the roster service.
type RosterSource interface {
	EmployeeExists(ctx context.Context, tenantID, employeeID string) (bool, error)
}

const (
	PunchStarted = "started"
	PunchEnded   = "ended"
)

// PunchResult is the outcome of one accepted punch.
type PunchResult struct {
	Kind     string
	Interval ClockInterval
}

type Service struct {
	store  LedgerStore
	roster RosterSource
	log    *zap.Logger
}

func NewService(conn *sql.DB, roster RosterSource, log *zap.Logger) *Service {
	return &Service{store: NewStore(conn), roster: roster, log: log}
}

// RecordPunch turns one punch into a ledger mutation. The caller fetches the
// tenant's current clock-in settings and passes them in; the ledger never
// reads ambient state.
//
// A punch against a slot that already has both times starts a new cycle:
// start is overwritten with the rounded timestamp and end is cleared, same as
// the empty-slot branch. Mistakes are repaired through ReplaceDayEntries.
func (s *Service) RecordPunch(ctx context.Context, tenantID, employeeID string, rawTS time.Time, clockin settings.Clockin) (PunchResult, error) {
	if err := clockin.Validate(); err != nil {
		return PunchResult{}, err
	}

	ok, err := s.roster.EmployeeExists(ctx, tenantID, employeeID)
	if err != nil {
		return PunchResult{}, apperr.Unavailable("roster read failed")
	}
	if !ok {
		return PunchResult{}, apperr.NotFound("employee not found")
	}

	// Partitioning follows the rounded time: a 23:50 punch with a 30 minute
	// quantum lands on the next day's key.
	rounded := RoundPunchTime(rawTS, clockin.RoundTimeMinutes)
	month := MonthKeyFor(rounded)
	day := DayKeyFor(rounded)

	var kind string
	interval, err := s.store.RecordPunch(ctx, tenantID, month, day, employeeID,
		func(existing *ClockInterval) (ClockInterval, error) {
			switch {
			case existing == nil:
				kind = PunchStarted
				return ClockInterval{EmployeeID: employeeID, StartTime: rounded}, nil

			case existing.Open():
				elapsed := int(rounded.Sub(existing.StartTime) / time.Minute)
				if elapsed < clockin.TimeBetweenMinutes || !rounded.After(existing.StartTime) {
					wait := clockin.TimeBetweenMinutes - elapsed
					if wait < 1 {
						wait = 1
					}
					return ClockInterval{}, apperr.TooSoon(wait, clockin.TimeBetweenMinutes)
				}
				kind = PunchEnded
				end := rounded
				return ClockInterval{EmployeeID: employeeID, StartTime: existing.StartTime, EndTime: &end}, nil

			default:
				// Closed interval: new cycle.
				kind = PunchStarted
				return ClockInterval{EmployeeID: employeeID, StartTime: rounded}, nil
			}
		})
	if err != nil {
		var e *apperr.Error
		if errors.As(err, &e) {
			return PunchResult{}, err
		}
		return PunchResult{}, apperr.Unavailable("ledger write failed")
	}

	s.log.Info("punch recorded",
		zap.String("tenant_id", tenantID),
		zap.String("employee_id", employeeID),
		zap.String("kind", kind),
		zap.Time("rounded", rounded),
		zap.String("day", string(day)),
	)
	return PunchResult{Kind: kind, Interval: interval}, nil
}

// MonthEntries returns the day-keyed map for one month.
func (s *Service) MonthEntries(ctx context.Context, tenantID string, month MonthKey) (map[DayKey]map[string]ClockInterval, error) {
	entries, err := s.store.MonthEntries(ctx, tenantID, month)
	if err != nil {
		return nil, apperr.Unavailable("ledger read failed")
	}
	return entries, nil
}

// ReplaceDayEntries is the admin correction path: the given slots are stored
// exactly as provided, with no rounding and no minimum-gap check. The only
// validation is interval ordering.
func (s *Service) ReplaceDayEntries(ctx context.Context, tenantID string, day DayKey, entries map[string]ClockInterval) (map[string]ClockInterval, error) {
	replace := make([]ClockInterval, 0, len(entries))
	for employeeID, ci := range entries {
		if ci.StartTime.IsZero() {
			return nil, apperr.Invalid("start_time is required")
		}
		if ci.EndTime != nil && !ci.EndTime.After(ci.StartTime) {
			return nil, apperr.Invalid("end_time must be after start_time")
		}
		ci.EmployeeID = employeeID
		replace = append(replace, ci)
	}

	if err := s.store.ReplaceDayEntries(ctx, tenantID, day.Month(), day, replace); err != nil {
		return nil, apperr.Unavailable("ledger write failed")
	}

	s.log.Info("day entries replaced",
		zap.String("tenant_id", tenantID),
		zap.String("day", string(day)),
		zap.Int("count", len(replace)),
	)

	updated, err := s.store.DayEntries(ctx, tenantID, day)
	if err != nil {
		return nil, apperr.Unavailable("ledger read failed")
	}
	return updated, nil
}
