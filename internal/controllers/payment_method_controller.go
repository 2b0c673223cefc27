package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack-be/internal/middleware"
	"fintrack-be/internal/models"
	"fintrack-be/internal/service"
)

type PaymentMethodController struct {
	paymentMethodService service.PaymentMethodService
}

func NewPaymentMethodController(paymentMethodService service.PaymentMethodService) *PaymentMethodController {
	return &PaymentMethodController{paymentMethodService: paymentMethodService}
}

// GetPaymentMethod handles GET /api/v1/payment-methods/:id
func (pc *PaymentMethodController) GetPaymentMethod(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	method, err := pc.paymentMethodService.GetPaymentMethod(c.Request.Context(), middleware.CallerFrom(c), id)
	respond(c, http.StatusOK, method, err)
}

// GetPaymentMethods handles GET /api/v1/payment-methods
func (pc *PaymentMethodController) GetPaymentMethods(c *gin.Context) {
	q, ok := pagination(c)
	if !ok {
		return
	}
	page, err := pc.paymentMethodService.GetPaymentMethods(c.Request.Context(), middleware.CallerFrom(c), q)
	respond(c, http.StatusOK, page, err)
}

// AddPaymentMethod handles POST /api/v1/payment-methods
func (pc *PaymentMethodController) AddPaymentMethod(c *gin.Context) {
	var req models.PaymentMethodAddDTO
	if !bindJSON(c, &req) {
		return
	}
	method, err := pc.paymentMethodService.AddPaymentMethod(c.Request.Context(), middleware.CallerFrom(c), req)
	respond(c, http.StatusCreated, method, err)
}

// UpdatePaymentMethod handles PUT /api/v1/payment-methods/:id
func (pc *PaymentMethodController) UpdatePaymentMethod(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.PaymentMethodUpdateDTO
	if !bindJSON(c, &req) {
		return
	}
	req.ID = id

	method, err := pc.paymentMethodService.UpdatePaymentMethod(c.Request.Context(), middleware.CallerFrom(c), req)
	respond(c, http.StatusOK, method, err)
}

// DeletePaymentMethod handles DELETE /api/v1/payment-methods/:id
func (pc *PaymentMethodController) DeletePaymentMethod(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := pc.paymentMethodService.DeletePaymentMethod(c.Request.Context(), middleware.CallerFrom(c), id)
	respond(c, http.StatusOK, nil, err)
}
