package stats

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/service/stats"
	"github.com/jwalitptl/quickmed-api/pkg/httputil"
)

// Handler exposes the dashboard counters
type Handler struct {
	svc stats.Servicer
}

func NewHandler(svc stats.Servicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, _ *gin.RouterGroup) {
	public.GET("/users/count", h.count(h.svc.Users))
	public.GET("/clinics/count", h.count(h.svc.Clinics))
	public.GET("/appointments/count", h.count(h.svc.Appointments))
	public.GET("/appointments/today/count", h.count(h.svc.AppointmentsToday))
}

func (h *Handler) count(fn func(context.Context) (*model.Count, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := fn(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			return
		}
		httputil.RespondWithSuccess(c, n)
	}
}
