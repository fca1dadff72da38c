package handler

import (
	"net/http"

	"fopassistant/internal/service"
	"fopassistant/pkg/response"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService service.SettingsService
}

func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/settings")
	{
		settings.GET("/:user_id", h.GetSettings)
		settings.PATCH("/:user_id", h.UpdateSettings)
	}
}

// GetSettings returns the user's tax settings, creating the defaults on first access
// @Summary      Get FOP settings
// @Tags         settings
// @Produce      json
// @Param        user_id  path      string  true  "User ID"
// @Success      200      {object}  response.Response{data=service.SettingsResponse}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/settings/{user_id} [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, settings))
}

// UpdateSettings applies a partial update; explicit nulls clear nullable fields
// @Summary      Update FOP settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        user_id  path      string                         true  "User ID"
// @Param        payload  body      service.UpdateSettingsRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=service.SettingsResponse}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/settings/{user_id} [patch]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req service.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), c.Param("user_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, settings))
}
