package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeitin-backend/internal/apperr"
	"timeitin-backend/internal/platform/auth"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/settings", h.Get)
	r.PUT("/settings", h.Update)
}

func (h *Handler) Get(c *gin.Context) {
	clockin, err := h.svc.Get(c.Request.Context(), auth.TenantID(c))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"clockin": clockin})
}

func (h *Handler) Update(c *gin.Context) {
	var req Clockin
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.Invalid("invalid json")))
		return
	}

	clockin, err := h.svc.Update(c.Request.Context(), auth.TenantID(c), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"clockin": clockin})
}
