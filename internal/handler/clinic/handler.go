package clinic

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/quickmed-api/internal/handler"
	"github.com/jwalitptl/quickmed-api/internal/model"
	clinicService "github.com/jwalitptl/quickmed-api/internal/service/clinic"
	"github.com/jwalitptl/quickmed-api/pkg/httputil"
)

type Handler struct {
	service clinicService.ClinicServicer
}

func NewHandler(service clinicService.ClinicServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, _ *gin.RouterGroup) {
	clinics := public.Group("/clinics")
	{
		clinics.GET("", h.ListClinics)
		clinics.GET("/:id", h.GetClinic)
	}

	services := public.Group("/services")
	{
		services.GET("", h.ListServices)
		services.GET("/urgent", h.ListUrgentServices)
		services.GET("/category/:category", h.ListServicesByCategory)
	}

	public.GET("/available-slots", h.ListAvailableSlots)
}

func (h *Handler) ListClinics(c *gin.Context) {
	clinics, err := h.service.ListClinics(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, clinics)
}

func (h *Handler) GetClinic(c *gin.Context) {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	clinic, err := h.service.GetClinic(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, clinic)
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, services)
}

func (h *Handler) ListUrgentServices(c *gin.Context) {
	services, err := h.service.ListUrgentServices(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, services)
}

func (h *Handler) ListServicesByCategory(c *gin.Context) {
	services, err := h.service.ListServicesByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, services)
}

// ListAvailableSlots takes optional clinic_id, service_id and date filters
func (h *Handler) ListAvailableSlots(c *gin.Context) {
	var filter model.SlotFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		_ = c.Error(err)
		return
	}

	slots, err := h.service.ListAvailableSlots(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, slots)
}
