package handler

import (
	"net/http"

	"fopassistant/internal/service"
	"fopassistant/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/transactions/summary", h.GetSummary)
	router.GET("/statistics/periods", h.GetPeriods)
}

// @Summary      Ledger summary
// @Description  Income and expense totals over the whole ledger, optionally up to end_date
// @Tags         statistics
// @Produce      json
// @Param        user_id   query     string  true   "User ID"
// @Param        end_date  query     string  false  "YYYY-MM-DD, inclusive"
// @Success      200       {object}  response.Response{data=model.LedgerSummary}
// @Failure      400       {object}  response.Response
// @Router       /api/transactions/summary [get]
func (h *StatisticsHandler) GetSummary(c *gin.Context) {
	var req service.SummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	summary, err := h.statisticsService.GetSummary(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// @Summary      Totals per period
// @Tags         statistics
// @Produce      json
// @Param        user_id     query     string  true   "User ID"
// @Param        group_by    query     string  false  "month | quarter | year"
// @Param        start_date  query     string  true   "YYYY-MM-DD"
// @Param        end_date    query     string  true   "YYYY-MM-DD"
// @Success      200         {object}  response.Response{data=service.PeriodBreakdownResponse}
// @Failure      400         {object}  response.Response
// @Router       /api/statistics/periods [get]
func (h *StatisticsHandler) GetPeriods(c *gin.Context) {
	var req service.PeriodBreakdownRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.statisticsService.GetPeriodBreakdown(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
