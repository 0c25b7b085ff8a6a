package roster

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"timeitin-backend/internal/apperr"
)

// ErrUnknownEmployee is returned by the store when a bulk edit references an
// id outside the tenant's roster.
var ErrUnknownEmployee = errors.New("unknown employee")

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type IDGen interface {
	New() (string, error)
}

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

type Service struct {
	store EmployeeStore
	clock Clock
	id    IDGen
	log   *zap.Logger
}

func NewService(conn *sql.DB, log *zap.Logger) *Service {
	return &Service{
		store: NewStore(conn),
		clock: realClock{},
		id:    ulidGen{},
		log:   log,
	}
}

func (s *Service) List(ctx context.Context, tenantID string) ([]EmployeeResponse, error) {
	employees, err := s.store.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, apperr.Unavailable("roster read failed")
	}
	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, e.toDTO())
	}
	return out, nil
}

// Create adds an employee with a generated id and today as start date.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	if req.FirstName == "" || req.LastName == "" {
		return EmployeeResponse{}, apperr.Invalid("first_name and last_name are required")
	}

	id, err := s.id.New()
	if err != nil {
		return EmployeeResponse{}, err
	}

	now := s.clock.Now().UTC()
	e := Employee{
		ID:        id,
		TenantID:  tenantID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		StartDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}

	if err := s.store.Insert(ctx, &e); err != nil {
		return EmployeeResponse{}, apperr.Unavailable("roster write failed")
	}

	s.log.Info("employee created", zap.String("tenant_id", tenantID), zap.String("employee_id", id))
	return e.toDTO(), nil
}

// Replace overwrites the submitted employee records wholesale. Last writer
// wins for the batch; there is no optimistic concurrency.
func (s *Service) Replace(ctx context.Context, tenantID string, req ReplaceEmployeesRequest) error {
	employees := make([]Employee, 0, len(req.Employees))
	for _, u := range req.Employees {
		if u.ID == "" {
			return apperr.Invalid("employee id is required")
		}
		start, err := time.ParseInLocation(StartDateLayout, u.StartDate, time.UTC)
		if err != nil {
			return apperr.Invalid("start_date must be DD-MM-YYYY")
		}
		employees = append(employees, Employee{
			ID:        u.ID,
			TenantID:  tenantID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			StartDate: start,
		})
	}

	if err := s.store.ReplaceAll(ctx, tenantID, employees); err != nil {
		if errors.Is(err, ErrUnknownEmployee) {
			return apperr.NotFound("employee not found")
		}
		return apperr.Unavailable("roster write failed")
	}

	s.log.Info("roster replaced", zap.String("tenant_id", tenantID), zap.Int("count", len(employees)))
	return nil
}

// Delete removes the given employees. Their ledger entries are not cascaded.
func (s *Service) Delete(ctx context.Context, tenantID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, apperr.Invalid("ids must not be empty")
	}

	n, err := s.store.Delete(ctx, tenantID, ids)
	if err != nil {
		return 0, apperr.Unavailable("roster write failed")
	}

	s.log.Info("employees deleted", zap.String("tenant_id", tenantID), zap.Int64("removed", n))
	return n, nil
}

// EmployeeExists reports whether the id belongs to the tenant's roster. The
// ledger checks it before accepting a punch.
func (s *Service) EmployeeExists(ctx context.Context, tenantID, employeeID string) (bool, error) {
	return s.store.Exists(ctx, tenantID, employeeID)
}
