package roster

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeitin-backend/internal/apperr"
	"timeitin-backend/internal/platform/auth"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/employees", h.List)
	r.POST("/employees", h.Create)
	r.PUT("/employees", h.Replace)
	r.DELETE("/employees", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	employees, err := h.svc.List(c.Request.Context(), auth.TenantID(c))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.Invalid("invalid json or missing required fields")))
		return
	}

	e, err := h.svc.Create(c.Request.Context(), auth.TenantID(c), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *Handler) Replace(c *gin.Context) {
	var req ReplaceEmployeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.Invalid("invalid json or missing required fields")))
		return
	}

	if err := h.svc.Replace(c.Request.Context(), auth.TenantID(c), req); err != nil {
		c.JSON(apperr.HTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "roster updated"})
}

func (h *Handler) Delete(c *gin.Context) {
	var req DeleteEmployeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.Invalid("invalid json or missing required fields")))
		return
	}

	removed, err := h.svc.Delete(c.Request.Context(), auth.TenantID(c), req.IDs)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), apperr.Body(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
