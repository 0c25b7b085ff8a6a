// Package apperr is the error model shared by the roster, ledger, settings
// and auth services.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeTooSoon         Code = "TOO_SOON"
	CodeUnavailable     Code = "UNAVAILABLE"
	CodeInternal        Code = "INTERNAL"
)

type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	// WaitMinutes is set only on TOO_SOON: how long the caller has to wait
	// before the clock-out is accepted.
	WaitMinutes int `json:"wait_minutes,omitempty"`
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func Invalid(msg string) *Error     { return &Error{Code: CodeInvalidArgument, Message: msg} }
func NotFound(msg string) *Error    { return &Error{Code: CodeNotFound, Message: msg} }
func Conflict(msg string) *Error    { return &Error{Code: CodeConflict, Message: msg} }
func Unavailable(msg string) *Error { return &Error{Code: CodeUnavailable, Message: msg} }
func Internal(msg string) *Error    { return &Error{Code: CodeInternal, Message: msg} }

func TooSoon(waitMinutes, timeBetweenMinutes int) *Error {
	return &Error{
		Code:        CodeTooSoon,
		Message:     fmt.Sprintf("please wait at least %d minutes between clock-ins", timeBetweenMinutes),
		WaitMinutes: waitMinutes,
	}
}

func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		switch e.Code {
		case CodeInvalidArgument:
			return http.StatusBadRequest
		case CodeNotFound:
			return http.StatusNotFound
		case CodeConflict, CodeTooSoon:
			return http.StatusConflict
		case CodeUnavailable:
			return http.StatusServiceUnavailable
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Error *Error `json:"error"`
}

// Body wraps err for the JSON response. Non-domain errors are flattened to
// INTERNAL so store details never leak to clients.
func Body(err error) any {
	var e *Error
	if errors.As(err, &e) {
		return errorBody{Error: e}
	}
	return errorBody{Error: Internal("internal error")}
}
