package handler

import (
	"net/http"

	"fopassistant/internal/service"
	"fopassistant/pkg/response"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.GetCategories)
		categories.POST("", h.CreateCategory)
		categories.PATCH("/:id", h.RenameCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

// GetCategories lists system categories plus the user's own, grouped by type
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        user_id  query     string  false  "User ID"
// @Success      200      {object}  response.Response{data=service.CategoryListResponse}
// @Router       /api/categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	res, err := h.categoryService.GetCategories(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// @Summary      Create category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateCategoryRequest  true  "Category"
// @Success      201      {object}  response.Response{data=service.CategoryResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

// RenameCategory only applies to the user's own categories
// @Summary      Rename category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Category ID"
// @Param        user_id  query     string                         true  "User ID"
// @Param        payload  body      service.RenameCategoryRequest  true  "New name"
// @Success      200      {object}  response.Response{data=service.CategoryResponse}
// @Failure      404      {object}  response.Response
// @Router       /api/categories/{id} [patch]
func (h *CategoryHandler) RenameCategory(c *gin.Context) {
	var req service.RenameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.categoryService.RenameCategory(c.Request.Context(), c.Query("user_id"), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.categoryService.DeleteCategory(c.Request.Context(), c.Query("user_id"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Category deleted"))
}
