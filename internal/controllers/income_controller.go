package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack-be/internal/middleware"
	"fintrack-be/internal/models"
	"fintrack-be/internal/service"
)

type IncomeController struct {
	incomeService service.IncomeService
}

func NewIncomeController(incomeService service.IncomeService) *IncomeController {
	return &IncomeController{incomeService: incomeService}
}

// GetIncome handles GET /api/v1/incomes/:id
func (ic *IncomeController) GetIncome(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	income, err := ic.incomeService.GetIncome(c.Request.Context(), middleware.CallerFrom(c), id)
	respond(c, http.StatusOK, income, err)
}

// GetIncomes handles GET /api/v1/incomes
func (ic *IncomeController) GetIncomes(c *gin.Context) {
	q, ok := transactionQuery(c)
	if !ok {
		return
	}
	page, err := ic.incomeService.GetIncomes(c.Request.Context(), middleware.CallerFrom(c), q)
	respond(c, http.StatusOK, page, err)
}

// AddIncome handles POST /api/v1/incomes
func (ic *IncomeController) AddIncome(c *gin.Context) {
	var req models.IncomeAddDTO
	if !bindJSON(c, &req) {
		return
	}
	income, err := ic.incomeService.AddIncome(c.Request.Context(), middleware.CallerFrom(c), req)
	respond(c, http.StatusCreated, income, err)
}

// UpdateIncome handles PUT /api/v1/incomes/:id
func (ic *IncomeController) UpdateIncome(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.IncomeUpdateDTO
	if !bindJSON(c, &req) {
		return
	}
	req.ID = id

	income, err := ic.incomeService.UpdateIncome(c.Request.Context(), middleware.CallerFrom(c), req)
	respond(c, http.StatusOK, income, err)
}

// DeleteIncome handles DELETE /api/v1/incomes/:id
func (ic *IncomeController) DeleteIncome(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := ic.incomeService.DeleteIncome(c.Request.Context(), middleware.CallerFrom(c), id)
	respond(c, http.StatusOK, nil, err)
}
