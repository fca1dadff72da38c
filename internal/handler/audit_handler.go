package handler

import (
	"net/http"

	"fopassistant/internal/service"
	"fopassistant/pkg/pagination"
	"fopassistant/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit-logs", h.GetAuditLogs)
}

// GetAuditLogs retrieves one user's change history, newest first
// @Summary      Get audit logs
// @Tags         audit
// @Produce      json
// @Param        user_id  query     string  true   "User ID"
// @Param        limit    query     int     false  "Page size (default 50, max 200)"
// @Param        offset   query     int     false  "Rows to skip"
// @Success      200      {object}  response.Response{data=object}
// @Router       /api/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	page := pagination.Parse(c)

	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), c.Query("user_id"), page.Offset, page.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"logs":   logs,
		"total":  total,
		"limit":  page.Limit,
		"offset": page.Offset,
	}))
}
