package handler

import (
	"net/http"

	"fopassistant/internal/service"
	"fopassistant/pkg/pagination"
	"fopassistant/pkg/response"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	transactionService service.TransactionService
}

func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

func (h *TransactionHandler) RegisterRoutes(router *gin.RouterGroup) {
	transactions := router.Group("/transactions")
	{
		transactions.GET("", h.ListTransactions)
		transactions.POST("", h.CreateTransaction)
		transactions.GET("/:id", h.GetTransaction)
		transactions.PATCH("/:id", h.PatchTransaction)
		transactions.DELETE("/:id", h.DeleteTransaction)
	}
}

// ListTransactions handles GET /transactions with date range, type and pagination filters
// @Summary      List transactions
// @Tags         transactions
// @Produce      json
// @Param        user_id     query     string  true   "User ID"
// @Param        start_date  query     string  false  "YYYY-MM-DD, inclusive"
// @Param        end_date    query     string  false  "YYYY-MM-DD, inclusive"
// @Param        type        query     string  false  "income | expense"
// @Param        limit       query     int     false  "Page size (default 50, max 200)"
// @Param        offset      query     int     false  "Rows to skip"
// @Success      200         {object}  response.Response{data=object}
// @Failure      400         {object}  response.Response
// @Router       /api/transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var req service.ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	page := pagination.Parse(c)
	req.Offset, req.Limit = page.Offset, page.Limit

	transactions, total, err := h.transactionService.GetTransactions(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"transactions": transactions,
		"total":        total,
		"limit":        page.Limit,
		"offset":       page.Offset,
	}))
}

// CreateTransaction records an income or expense, converting foreign amounts to UAH
// @Summary      Create transaction
// @Description  Foreign currency amounts use manual_rate when positive, otherwise the NBU rate for the date.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateTransactionRequest  true  "Transaction"
// @Success      201      {object}  response.Response{data=service.CreateTransactionResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response  "Rate unavailable, retry with manual_rate"
// @Router       /api/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req service.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.transactionService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}

// @Summary      Get transaction
// @Tags         transactions
// @Produce      json
// @Param        id       path      string  true  "Transaction ID"
// @Param        user_id  query     string  true  "User ID"
// @Success      200      {object}  response.Response{data=service.TransactionResponse}
// @Failure      404      {object}  response.Response
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	tx, err := h.transactionService.GetTransaction(c.Request.Context(), c.Query("user_id"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, tx))
}

// PatchTransaction updates only the keys present in the body
// @Summary      Patch transaction
// @Description  Touching amount, date, currency or manual_rate recalculates the UAH amount. A null manual_rate forces a fresh NBU lookup.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true  "Transaction ID"
// @Param        user_id  query     string                           true  "User ID"
// @Param        payload  body      service.PatchTransactionRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=service.PatchTransactionResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/transactions/{id} [patch]
func (h *TransactionHandler) PatchTransaction(c *gin.Context) {
	var req service.PatchTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.transactionService.PatchTransaction(c.Request.Context(), c.Query("user_id"), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// @Summary      Delete transaction
// @Tags         transactions
// @Produce      json
// @Param        id       path      string  true  "Transaction ID"
// @Param        user_id  query     string  true  "User ID"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), c.Query("user_id"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Transaction deleted"))
}
