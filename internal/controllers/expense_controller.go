package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack-be/internal/middleware"
	"fintrack-be/internal/models"
	"fintrack-be/internal/service"
)

type ExpenseController struct {
	expenseService service.ExpenseService
}

func NewExpenseController(expenseService service.ExpenseService) *ExpenseController {
	return &ExpenseController{expenseService: expenseService}
}

// GetExpense handles GET /api/v1/expenses/:id
func (ec *ExpenseController) GetExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	expense, err := ec.expenseService.GetExpense(c.Request.Context(), middleware.CallerFrom(c), id)
	respond(c, http.StatusOK, expense, err)
}

// GetExpenses handles GET /api/v1/expenses
func (ec *ExpenseController) GetExpenses(c *gin.Context) {
	q, ok := transactionQuery(c)
	if !ok {
		return
	}
	page, err := ec.expenseService.GetExpenses(c.Request.Context(), middleware.CallerFrom(c), q)
	respond(c, http.StatusOK, page, err)
}

// AddExpense handles POST /api/v1/expenses.
// A failed notification still returns the stored expense next to the error.
func (ec *ExpenseController) AddExpense(c *gin.Context) {
	var req models.ExpenseAddDTO
	if !bindJSON(c, &req) {
		return
	}
	expense, err := ec.expenseService.AddExpense(c.Request.Context(), middleware.CallerFrom(c), req)
	respond(c, http.StatusCreated, expense, err)
}

// UpdateExpense handles PUT /api/v1/expenses/:id
func (ec *ExpenseController) UpdateExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.ExpenseUpdateDTO
	if !bindJSON(c, &req) {
		return
	}
	req.ID = id

	expense, err := ec.expenseService.UpdateExpense(c.Request.Context(), middleware.CallerFrom(c), req)
	respond(c, http.StatusOK, expense, err)
}

// DeleteExpense handles DELETE /api/v1/expenses/:id
func (ec *ExpenseController) DeleteExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := ec.expenseService.DeleteExpense(c.Request.Context(), middleware.CallerFrom(c), id)
	respond(c, http.StatusOK, nil, err)
}
