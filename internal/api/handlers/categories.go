package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/phalkmin/WP-AutoInsight/internal/repository"
)

// CategoryHandler handles category requests
type CategoryHandler struct {
	Categories repository.CategoryRepository
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(repos *repository.Factory) *CategoryHandler {
	return &CategoryHandler{Categories: repos.CategoryRepository}
}

// ListCategories returns all categories
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.Categories.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch categories: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    categories,
	})
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CreateCategory creates a category, returning the existing one when the
// name is already taken
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	req := new(CreateCategoryRequest)
	if err := c.BodyParser(req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Category name is required",
		})
	}

	category, err := h.Categories.FindOrCreateByName(req.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create category: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    category,
	})
}
