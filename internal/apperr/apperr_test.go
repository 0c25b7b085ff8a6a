package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Invalid("x"), http.StatusBadRequest},
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{TooSoon(50, 60), http.StatusConflict},
		{Unavailable("x"), http.StatusServiceUnavailable},
		{Internal("x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFound("x")), http.StatusNotFound},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), "err=%v", tc.err)
	}
}

func TestTooSoonCarriesWait(t *testing.T) {
	e := TooSoon(50, 60)
	assert.Equal(t, CodeTooSoon, e.Code)
	assert.Equal(t, 50, e.WaitMinutes)
	assert.Contains(t, e.Message, "60")
}

func TestBodyHidesNonDomainErrors(t *testing.T) {
	body := Body(errors.New("dial tcp: connection refused")).(errorBody)
	assert.Equal(t, CodeInternal, body.Error.Code)
	assert.NotContains(t, body.Error.Message, "dial tcp")
}
