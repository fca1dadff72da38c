package handler

import (
	"net/http"

	"fopassistant/internal/service"
	"fopassistant/pkg/response"

	"github.com/gin-gonic/gin"
)

type TaxHandler struct {
	taxService service.TaxService
}

func NewTaxHandler(taxService service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

func (h *TaxHandler) RegisterRoutes(router *gin.RouterGroup) {
	tax := router.Group("/tax")
	{
		tax.GET("/calculate", h.Calculate)
		tax.GET("/calendar", h.GetCalendar)
	}
}

// Calculate checks group restrictions and computes the taxes owed
// @Summary      Calculate taxes
// @Description  Rejects settings that break their group's rules with the list of violation codes.
// @Tags         tax
// @Produce      json
// @Param        user_id         query     string  true   "User ID"
// @Param        annual_income   query     string  false  "Annual income, UAH"
// @Param        monthly_income  query     string  false  "Monthly income, UAH"
// @Param        period          query     string  false  "month | quarter | year"
// @Success      200             {object}  response.Response{data=service.TaxCalculationResponse}
// @Failure      400             {object}  response.Response
// @Failure      404             {object}  response.Response
// @Router       /api/tax/calculate [get]
func (h *TaxHandler) Calculate(c *gin.Context) {
	var req service.TaxCalculationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.taxService.Calculate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// GetCalendar lists payment and reporting deadlines
// @Summary      Payment calendar
// @Tags         tax
// @Produce      json
// @Param        group  query     int  false  "Only deadlines of this FOP group"
// @Success      200    {object}  response.Response{data=[]tax.CalendarEntry}
// @Failure      400    {object}  response.Response
// @Router       /api/tax/calendar [get]
func (h *TaxHandler) GetCalendar(c *gin.Context) {
	entries, err := h.taxService.Calendar(c.Query("group"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}
