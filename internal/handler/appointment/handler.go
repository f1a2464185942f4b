package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/quickmed-api/internal/handler"
	"github.com/jwalitptl/quickmed-api/internal/middleware"
	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/service/appointment"
	"github.com/jwalitptl/quickmed-api/pkg/httputil"
)

type Handler struct {
	service appointment.Servicer
	auth    *middleware.AuthMiddleware
}

func NewHandler(service appointment.Servicer, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, auth: auth}
}

// BookingResponse keeps the id at the top level for older clients
type BookingResponse struct {
	ID          int64              `json:"id"`
	Appointment *model.Appointment `json:"appointment"`
}

func (h *Handler) RegisterRoutes(_, protected *gin.RouterGroup) {
	appointments := protected.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:user_id", h.auth.RequireSelf("user_id"), h.ListAppointments)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	req.UserID = middleware.UserID(c)

	apt, err := h.service.Book(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	httputil.RespondWithCreated(c, "Appointment booked successfully", BookingResponse{
		ID:          apt.ID,
		Appointment: apt,
	})
}

// ListAppointments returns the caller's appointments. The /:user_id form
// is guarded by RequireSelf, so both routes list the same rows.
func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, err := h.service.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	apt, err := h.service.UpdateStatus(c.Request.Context(), id, middleware.UserID(c), req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, httputil.NewMessageResponse("Appointment updated successfully", apt))
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, httputil.NewMessageResponse("Appointment deleted successfully", nil))
}
