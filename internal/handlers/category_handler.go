package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoriesResponse represents the list of categories in use
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// GetCategories handles the retrieval of all categories in use
// @Summary     List categories
// @Description Get the distinct categories across all stored expenses, sorted ascending
// @Tags        categories
// @Accept      json
// @Produce     json
// @Success     200 {object} CategoriesResponse "Categories in use"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
