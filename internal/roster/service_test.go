package roster

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"timeitin-backend/internal/apperr"
)

type fakeStore struct {
	byID map[string]Employee
	err  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: make(map[string]Employee)}
}

func (f *fakeStore) ListByTenant(_ context.Context, tenantID string) ([]Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []Employee
	for _, e := range f.byID {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) Exists(_ context.Context, tenantID, employeeID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	e, ok := f.byID[employeeID]
	return ok && e.TenantID == tenantID, nil
}

func (f *fakeStore) Insert(_ context.Context, e *Employee) error {
	if f.err != nil {
		return f.err
	}
	f.byID[e.ID] = *e
	return nil
}

func (f *fakeStore) ReplaceAll(_ context.Context, tenantID string, employees []Employee) error {
	if f.err != nil {
		return f.err
	}
	for _, e := range employees {
		existing, ok := f.byID[e.ID]
		if !ok || existing.TenantID != tenantID {
			return ErrUnknownEmployee
		}
	}
	for _, e := range employees {
		f.byID[e.ID] = e
	}
	return nil
}

func (f *fakeStore) Delete(_ context.Context, tenantID string, ids []string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for _, id := range ids {
		if e, ok := f.byID[id]; ok && e.TenantID == tenantID {
			delete(f.byID, id)
			n++
		}
	}
	return n, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqIDGen struct{ n int }

func (g *seqIDGen) New() (string, error) {
	g.n++
	return fmt.Sprintf("EMP%04d", g.n), nil
}

var testNow = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

func newTestService(store EmployeeStore) *Service {
	return &Service{store: store, clock: fixedClock{t: testNow}, id: &seqIDGen{}, log: zap.NewNop()}
}

func TestCreate(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	e, err := svc.Create(context.Background(), "t1", CreateEmployeeRequest{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, "EMP0001", e.ID)
	assert.Equal(t, "Ada", e.FirstName)
	// Start date defaults to the creation day.
	assert.Equal(t, "10-03-2025", e.StartDate)

	stored := store.byID["EMP0001"]
	assert.Equal(t, "t1", stored.TenantID)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), stored.StartDate)
}

func TestCreate_MissingName(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Create(context.Background(), "t1", CreateEmployeeRequest{FirstName: "Ada"})
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, apperr.CodeInvalidArgument, e.Code)
}

func TestReplace(t *testing.T) {
	store := newFakeStore()
	store.byID["EMP0001"] = Employee{ID: "EMP0001", TenantID: "t1", FirstName: "Ada", LastName: "Lovelace"}
	svc := newTestService(store)

	err := svc.Replace(context.Background(), "t1", ReplaceEmployeesRequest{Employees: []EmployeeUpdate{
		{ID: "EMP0001", FirstName: "Augusta", LastName: "King", StartDate: "01-01-2025"},
	}})
	require.NoError(t, err)

	updated := store.byID["EMP0001"]
	assert.Equal(t, "Augusta", updated.FirstName)
	assert.Equal(t, "King", updated.LastName)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), updated.StartDate)
}

func TestReplace_UnknownEmployee(t *testing.T) {
	svc := newTestService(newFakeStore())

	err := svc.Replace(context.Background(), "t1", ReplaceEmployeesRequest{Employees: []EmployeeUpdate{
		{ID: "ghost", FirstName: "A", LastName: "B", StartDate: "01-01-2025"},
	}})
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, apperr.CodeNotFound, e.Code)
}

func TestReplace_BadDate(t *testing.T) {
	svc := newTestService(newFakeStore())

	err := svc.Replace(context.Background(), "t1", ReplaceEmployeesRequest{Employees: []EmployeeUpdate{
		{ID: "EMP0001", FirstName: "A", LastName: "B", StartDate: "2025-01-01"},
	}})
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, apperr.CodeInvalidArgument, e.Code)
}

func TestDelete(t *testing.T) {
	store := newFakeStore()
	store.byID["EMP0001"] = Employee{ID: "EMP0001", TenantID: "t1"}
	store.byID["EMP0002"] = Employee{ID: "EMP0002", TenantID: "t2"}
	svc := newTestService(store)

	// Ids of other tenants are not touched.
	n, err := svc.Delete(context.Background(), "t1", []string{"EMP0001", "EMP0002"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NotContains(t, store.byID, "EMP0001")
	assert.Contains(t, store.byID, "EMP0002")
}

func TestDelete_EmptyIDs(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Delete(context.Background(), "t1", nil)
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, apperr.CodeInvalidArgument, e.Code)
}

func TestList_StoreFailure(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("down")
	svc := newTestService(store)

	_, err := svc.List(context.Background(), "t1")
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, apperr.CodeUnavailable, e.Code)
}
