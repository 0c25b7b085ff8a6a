package tenants

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeitin-backend/internal/apperr"
	"timeitin-backend/internal/platform/auth"
	"timeitin-backend/internal/settings"
)

type Handler struct{ svc *Service }

// RegisterRoutes mounts the routes reachable without a token.
func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
}

// RegisterProtectedRoutes mounts the session routes behind RequireAuth.
func RegisterProtectedRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.POST("/logout", h.Logout)
	r.POST("/refresh-token", h.Refresh)
	r.GET("/auth-status", h.AuthStatus)
	r.GET("/check-pin", h.CheckPin)
}

type RegisterRequest struct {
	Email    string            `json:"email" binding:"required,email"`
	Password string            `json:"password" binding:"required,min=6"`
	Pincode  string            `json:"pincode" binding:"required,min=4"`
	Settings *settings.Clockin `json:"settings,omitempty"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.Invalid("invalid json or missing required fields")))
		return
	}

	clockin := settings.Default()
	if req.Settings != nil {
		clockin = *req.Settings
		if err := clockin.Validate(); err != nil {
			c.JSON(apperr.HTTPStatus(err), apperr.Body(err))
			return
		}
	}

	id, err := h.svc.Register(c.Request.Context(), req.Email, req.Password, req.Pincode, clockin)
	if err != nil {
		if err == ErrAlreadyExists {
			c.JSON(http.StatusConflict, apperr.Body(apperr.Conflict("email already registered")))
			return
		}
		c.JSON(http.StatusInternalServerError, apperr.Body(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tenant_id": id})
}

type LoginRequest struct {
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	StayLoggedIn bool   `json:"stay_logged_in"`
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.Invalid("invalid json or missing required fields")))
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password, req.StayLoggedIn)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout is an ack only: tokens are stateless, the client drops its copy.
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) Refresh(c *gin.Context) {
	token, err := h.svc.Refresh(c.Request.Context(), auth.TenantID(c), c.GetBool(auth.CtxStayKey))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) AuthStatus(c *gin.Context) {
	// Reaching this handler at all means RequireAuth accepted the token.
	c.JSON(http.StatusOK, gin.H{"is_authenticated": true, "tenant_id": auth.TenantID(c)})
}

func (h *Handler) CheckPin(c *gin.Context) {
	pin := c.Query("pincode")
	if pin == "" {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.Invalid("pincode is required")))
		return
	}

	ok, err := h.svc.CheckPin(c.Request.Context(), auth.TenantID(c), pin)
	if err != nil {
		if err == ErrNotFound {
			c.JSON(http.StatusNotFound, apperr.Body(apperr.NotFound("tenant not found")))
			return
		}
		c.JSON(http.StatusInternalServerError, apperr.Body(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": ok})
}
