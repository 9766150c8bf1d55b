package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/notegenius-api/internal/application"
	"github.com/oksasatya/notegenius-api/internal/domain/entity"
	"github.com/oksasatya/notegenius-api/pkg/response"
)

const missingPaymentFields = "Missing required fields: amount, method, user_id"

type PaymentHandler struct {
	Svc *application.PaymentService
	Errors
}

func NewPaymentHandler(svc *application.PaymentService, errs Errors) *PaymentHandler {
	return &PaymentHandler{Svc: svc, Errors: errs}
}

type paymentRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
	Method string   `json:"method" binding:"required"`
	UserID int64    `json:"user_id" binding:"required"`
}

func (r paymentRequest) entity(id int64) *entity.Payment {
	return &entity.Payment{ID: id, Amount: *r.Amount, Method: r.Method, UserID: r.UserID}
}

func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Write(c, err, "Failed to fetch payments")
		return
	}
	response.Success(c, http.StatusOK, payments, "", nil)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := h.ID(c)
	if !ok {
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.Write(c, err, "Failed to fetch payment")
		return
	}
	response.Success(c, http.StatusOK, p, "", nil)
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req paymentRequest
	if !h.Bind(c, &req, missingPaymentFields) {
		return
	}
	p := req.entity(0)
	if err := h.Svc.Create(c.Request.Context(), p); err != nil {
		h.Write(c, err, "Failed to create payment")
		return
	}
	response.Success(c, http.StatusCreated, p, "Payment created successfully", nil)
}

func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := h.ID(c)
	if !ok {
		return
	}
	var req paymentRequest
	if !h.Bind(c, &req, missingPaymentFields) {
		return
	}
	p := req.entity(id)
	if err := h.Svc.Update(c.Request.Context(), p); err != nil {
		h.Write(c, err, "Failed to update payment")
		return
	}
	response.Success(c, http.StatusOK, p, "Payment updated successfully", nil)
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := h.ID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.Write(c, err, "Failed to delete payment")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Payment deleted successfully", nil)
}
