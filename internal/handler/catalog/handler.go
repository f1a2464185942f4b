package catalog

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/service/catalog"
	"github.com/jwalitptl/quickmed-api/pkg/httputil"
)

// Handler serves the reference tables behind the app's info screens
type Handler struct {
	svc catalog.Servicer
}

func NewHandler(svc catalog.Servicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, _ *gin.RouterGroup) {
	public.GET("/treatment-types", h.ListTreatmentTypes)

	prices := public.Group("/service-prices")
	{
		prices.GET("", h.ListServicePrices)
		prices.GET("/:service_name", h.GetServicePrice)
	}

	questions := public.Group("/support-questions")
	{
		questions.GET("", h.ListSupportQuestions)
		questions.GET("/:topic", h.ListSupportQuestionsByTopic)
	}
}

func (h *Handler) ListTreatmentTypes(c *gin.Context) {
	var filter model.TreatmentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		_ = c.Error(err)
		return
	}

	types, err := h.svc.ListTreatmentTypes(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, types)
}

func (h *Handler) ListServicePrices(c *gin.Context) {
	prices, err := h.svc.ListServicePrices(c.Request.Context(), c.Query("service_name"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, prices)
}

func (h *Handler) GetServicePrice(c *gin.Context) {
	price, err := h.svc.GetServicePrice(c.Request.Context(), c.Param("service_name"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, price)
}

func (h *Handler) ListSupportQuestions(c *gin.Context) {
	h.listQuestions(c, c.Query("topic"))
}

func (h *Handler) ListSupportQuestionsByTopic(c *gin.Context) {
	h.listQuestions(c, c.Param("topic"))
}

func (h *Handler) listQuestions(c *gin.Context, topic string) {
	questions, err := h.svc.ListSupportQuestions(c.Request.Context(), topic)
	if err != nil {
		_ = c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, questions)
}
