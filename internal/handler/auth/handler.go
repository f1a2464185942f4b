package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/quickmed-api/internal/middleware"
	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/service/auth"
	"github.com/jwalitptl/quickmed-api/pkg/httputil"
)

type Handler struct {
	svc auth.Servicer
}

func NewHandler(svc auth.Servicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/register", h.Register)
	public.POST("/login", h.Login)

	protected.POST("/refresh-token", h.RefreshToken)
	protected.GET("/profile", h.Profile)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	httputil.RespondWithCreated(c, "User registered successfully", resp)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	httputil.RespondWithSuccess(c, resp)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	resp, err := h.svc.Refresh(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	httputil.RespondWithSuccess(c, resp)
}

func (h *Handler) Profile(c *gin.Context) {
	user, err := h.svc.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"user": user})
}
