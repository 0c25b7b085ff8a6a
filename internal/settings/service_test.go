package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"timeitin-backend/internal/apperr"
)

type fakeStore struct {
	byTenant map[string]Clockin
	err      error
}

func (f *fakeStore) Get(_ context.Context, tenantID string) (*Clockin, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.byTenant[tenantID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeStore) Update(_ context.Context, tenantID string, c Clockin) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.byTenant[tenantID] = c
	return 1, nil
}

func newTestService(store ClockinStore) *Service {
	return &Service{store: store, log: zap.NewNop()}
}

func TestDefault(t *testing.T) {
	d := Default()
	assert.Equal(t, 5, d.RoundTimeMinutes)
	assert.Equal(t, 60, d.TimeBetweenMinutes)
	require.NoError(t, d.Validate())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		c       Clockin
		wantErr bool
	}{
		{"defaults", Default(), false},
		{"minimum quantum", Clockin{RoundTimeMinutes: 1, TimeBetweenMinutes: 0}, false},
		{"maximum quantum", Clockin{RoundTimeMinutes: 60, TimeBetweenMinutes: 0}, false},
		{"zero quantum", Clockin{RoundTimeMinutes: 0, TimeBetweenMinutes: 60}, true},
		{"negative quantum", Clockin{RoundTimeMinutes: -5, TimeBetweenMinutes: 60}, true},
		{"quantum over an hour", Clockin{RoundTimeMinutes: 61, TimeBetweenMinutes: 60}, true},
		{"negative gap", Clockin{RoundTimeMinutes: 5, TimeBetweenMinutes: -1}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.c.Validate()
			if tc.wantErr {
				var e *apperr.Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, apperr.CodeInvalidArgument, e.Code)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestServiceGet(t *testing.T) {
	svc := newTestService(&fakeStore{byTenant: map[string]Clockin{"t1": {RoundTimeMinutes: 10, TimeBetweenMinutes: 30}}})

	c, err := svc.Get(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, 10, c.RoundTimeMinutes)

	_, err = svc.Get(context.Background(), "missing")
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, apperr.CodeNotFound, e.Code)
}

func TestServiceUpdate(t *testing.T) {
	store := &fakeStore{byTenant: map[string]Clockin{"t1": Default()}}
	svc := newTestService(store)

	updated, err := svc.Update(context.Background(), "t1", Clockin{RoundTimeMinutes: 15, TimeBetweenMinutes: 45})
	require.NoError(t, err)
	assert.Equal(t, 15, updated.RoundTimeMinutes)
	assert.Equal(t, Clockin{RoundTimeMinutes: 15, TimeBetweenMinutes: 45}, store.byTenant["t1"])
}

func TestServiceUpdate_Invalid(t *testing.T) {
	store := &fakeStore{byTenant: map[string]Clockin{"t1": Default()}}
	svc := newTestService(store)

	_, err := svc.Update(context.Background(), "t1", Clockin{RoundTimeMinutes: 0})
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, apperr.CodeInvalidArgument, e.Code)
	// Store untouched on validation failure.
	assert.Equal(t, Default(), store.byTenant["t1"])
}

func TestServiceUpdate_UnknownTenant(t *testing.T) {
	svc := newTestService(&fakeStore{byTenant: map[string]Clockin{}})

	_, err := svc.Update(context.Background(), "missing", Default())
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, apperr.CodeNotFound, e.Code)
}

func TestServiceStoreFailure(t *testing.T) {
	svc := newTestService(&fakeStore{err: errors.New("down")})

	_, err := svc.Get(context.Background(), "t1")
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, apperr.CodeUnavailable, e.Code)
}
