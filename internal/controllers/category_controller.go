package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack-be/internal/middleware"
	"fintrack-be/internal/models"
	"fintrack-be/internal/service"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// GetCategory handles GET /api/v1/categories/:id
func (cc *CategoryController) GetCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	category, err := cc.categoryService.GetCategory(c.Request.Context(), middleware.CallerFrom(c), id)
	respond(c, http.StatusOK, category, err)
}

// GetCategories handles GET /api/v1/categories
func (cc *CategoryController) GetCategories(c *gin.Context) {
	q, ok := pagination(c)
	if !ok {
		return
	}
	page, err := cc.categoryService.GetCategories(c.Request.Context(), middleware.CallerFrom(c), q)
	respond(c, http.StatusOK, page, err)
}

// AddCategory handles POST /api/v1/categories
func (cc *CategoryController) AddCategory(c *gin.Context) {
	var req models.CategoryAddDTO
	if !bindJSON(c, &req) {
		return
	}
	category, err := cc.categoryService.AddCategory(c.Request.Context(), middleware.CallerFrom(c), req)
	respond(c, http.StatusCreated, category, err)
}

// UpdateCategory handles PUT /api/v1/categories/:id
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.CategoryUpdateDTO
	if !bindJSON(c, &req) {
		return
	}
	req.ID = id

	category, err := cc.categoryService.UpdateCategory(c.Request.Context(), middleware.CallerFrom(c), req)
	respond(c, http.StatusOK, category, err)
}

// DeleteCategory handles DELETE /api/v1/categories/:id
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := cc.categoryService.DeleteCategory(c.Request.Context(), middleware.CallerFrom(c), id)
	respond(c, http.StatusOK, nil, err)
}
