package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/quickmed-api/internal/middleware"
	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/service/settings"
	"github.com/jwalitptl/quickmed-api/pkg/httputil"
)

type Handler struct {
	svc  settings.Servicer
	auth *middleware.AuthMiddleware
}

func NewHandler(svc settings.Servicer, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{svc: svc, auth: auth}
}

func (h *Handler) RegisterRoutes(_, protected *gin.RouterGroup) {
	us := protected.Group("/user-settings")
	{
		us.POST("", h.SaveSettings)
		us.GET("/:user_id", h.auth.RequireSelf("user_id"), h.GetSettings)
		us.POST("/:user_id", h.auth.RequireSelf("user_id"), h.SaveSettings)
	}
}

func (h *Handler) GetSettings(c *gin.Context) {
	s, err := h.svc.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, s)
}

// SaveSettings answers 201 when the first row is written, 200 afterwards
func (h *Handler) SaveSettings(c *gin.Context) {
	var req model.UserSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	created, err := h.svc.Save(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if created {
		httputil.RespondWithCreated(c, "Settings saved successfully", &req)
		return
	}
	c.JSON(http.StatusOK, httputil.NewMessageResponse("Settings updated successfully", &req))
}
