package api

import (
	"net/http"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/service"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categoryService.GetCategories(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "", echo.Map{"categories": categories})
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	req := entity.CategoryRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}
	category, err := h.categoryService.CreateCategory(c.Request().Context(), &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, "Category added successfully", echo.Map{"category": category})
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	req := entity.CategoryRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}
	if err := h.categoryService.UpdateCategory(c.Request().Context(), id, &req); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "Category updated successfully", nil)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.categoryService.DeleteCategory(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "Category deleted successfully", nil)
}
