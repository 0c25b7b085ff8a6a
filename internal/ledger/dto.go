package ledger

import "time"

type PunchRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
}

type PunchResponse struct {
	Status    string     `json:"status"` // "started" or "ended"
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

// IntervalDTO is the wire form of one employee's day entry.
type IntervalDTO struct {
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

// ReplaceHoursRequest is the manual correction payload: the full replacement
// set for the touched employees on one day.
type ReplaceHoursRequest struct {
	Date  string                 `json:"date" binding:"required"` // DD-MM-YYYY
	Hours map[string]IntervalDTO `json:"hours" binding:"required"`
}

type HoursResponse struct {
	Hours map[DayKey]map[string]IntervalDTO `json:"hours"`
}

func toIntervalDTO(ci ClockInterval) IntervalDTO {
	return IntervalDTO{StartTime: ci.StartTime, EndTime: ci.EndTime}
}

func toHoursResponse(entries map[DayKey]map[string]ClockInterval) HoursResponse {
	out := make(map[DayKey]map[string]IntervalDTO, len(entries))
	for day, byEmployee := range entries {
		m := make(map[string]IntervalDTO, len(byEmployee))
		for id, ci := range byEmployee {
			m[id] = toIntervalDTO(ci)
		}
		out[day] = m
	}
	return HoursResponse{Hours: out}
}
