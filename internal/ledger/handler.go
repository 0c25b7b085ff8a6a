package ledger

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"timeitin-backend/internal/apperr"
	"timeitin-backend/internal/platform/auth"
	"timeitin-backend/internal/settings"
)

// SettingsSource supplies the tenant's current clock-in settings at punch
// time. Implemented by the settings service.
type SettingsSource interface {
	Get(ctx context.Context, tenantID string) (settings.Clockin, error)
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type Handler struct {
	svc      *Service
	settings SettingsSource
	clock    Clock
}

func RegisterRoutes(r gin.IRoutes, svc *Service, src SettingsSource) {
	h := &Handler{svc: svc, settings: src, clock: realClock{}}
	r.POST("/punches", h.Punch)
	r.GET("/hours", h.MonthHours)
	r.PUT("/hours", h.ReplaceHours)
}

// POST /punches
//
// The punch is stamped with server-received time; whatever clock the kiosk
// displays is not trusted.
func (h *Handler) Punch(c *gin.Context) {
	var req PunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.Invalid("invalid json or missing required fields")))
		return
	}

	tenantID := auth.TenantID(c)
	clockin, err := h.settings.Get(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), apperr.Body(err))
		return
	}

	res, err := h.svc.RecordPunch(c.Request.Context(), tenantID, req.EmployeeID, h.clock.Now(), clockin)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), apperr.Body(err))
		return
	}

	c.JSON(http.StatusOK, PunchResponse{
		Status:    res.Kind,
		StartTime: res.Interval.StartTime,
		EndTime:   res.Interval.EndTime,
	})
}

// GET /hours?month=MM-YYYY
func (h *Handler) MonthHours(c *gin.Context) {
	month, err := ParseMonthKey(c.Query("month"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), apperr.Body(err))
		return
	}

	entries, err := h.svc.MonthEntries(c.Request.Context(), auth.TenantID(c), month)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, toHoursResponse(entries))
}

// PUT /hours
func (h *Handler) ReplaceHours(c *gin.Context) {
	var req ReplaceHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.Invalid("invalid json or missing required fields")))
		return
	}

	day, err := ParseDayKey(req.Date)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), apperr.Body(err))
		return
	}

	entries := make(map[string]ClockInterval, len(req.Hours))
	for employeeID, dto := range req.Hours {
		entries[employeeID] = ClockInterval{
			EmployeeID: employeeID,
			StartTime:  dto.StartTime,
			EndTime:    dto.EndTime,
		}
	}

	updated, err := h.svc.ReplaceDayEntries(c.Request.Context(), auth.TenantID(c), day, entries)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), apperr.Body(err))
		return
	}

	out := make(map[string]IntervalDTO, len(updated))
	for id, ci := range updated {
		out[id] = toIntervalDTO(ci)
	}
	c.JSON(http.StatusOK, gin.H{"hours": out})
}
