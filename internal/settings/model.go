// Package settings holds the per-tenant clock-in configuration: the quantum
// punch times are rounded to and the minimum gap between a clock-in and its
// clock-out.
package settings

import "timeitin-backend/internal/apperr"

const (
	DefaultRoundTimeMinutes   = 5
	DefaultTimeBetweenMinutes = 60
	MaxRoundTimeMinutes       = 60
)

type Clockin struct {
	RoundTimeMinutes   int `json:"round_time_minutes"`
	TimeBetweenMinutes int `json:"time_between_minutes"`
}

func Default() Clockin {
	return Clockin{
		RoundTimeMinutes:   DefaultRoundTimeMinutes,
		TimeBetweenMinutes: DefaultTimeBetweenMinutes,
	}
}

func (c Clockin) Validate() error {
	if c.RoundTimeMinutes < 1 || c.RoundTimeMinutes > MaxRoundTimeMinutes {
		return apperr.Invalid("round_time_minutes must be between 1 and 60")
	}
	if c.TimeBetweenMinutes < 0 {
		return apperr.Invalid("time_between_minutes must be >= 0")
	}
	return nil
}
