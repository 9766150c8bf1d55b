package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/notegenius-api/internal/application"
	"github.com/oksasatya/notegenius-api/internal/domain/entity"
	"github.com/oksasatya/notegenius-api/pkg/response"
)

const missingTicketFields = "Missing required fields: user_id, name, email, title, description, issue_type"

type TicketHandler struct {
	Svc *application.TicketService
	Errors
}

func NewTicketHandler(svc *application.TicketService, errs Errors) *TicketHandler {
	return &TicketHandler{Svc: svc, Errors: errs}
}

type ticketRequest struct {
	UserID      int64   `json:"user_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	IssueType   string  `json:"issue_type" binding:"required"`
	Priority    *string `json:"priority"`
}

func (r ticketRequest) entity(id int64) *entity.Ticket {
	return &entity.Ticket{
		ID:          id,
		UserID:      r.UserID,
		Name:        r.Name,
		Email:       r.Email,
		Title:       r.Title,
		Description: r.Description,
		IssueType:   r.IssueType,
		Priority:    r.Priority,
	}
}

func (h *TicketHandler) List(c *gin.Context) {
	tickets, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Write(c, err, "Failed to fetch tickets")
		return
	}
	response.Success(c, http.StatusOK, tickets, "", nil)
}

func (h *TicketHandler) Get(c *gin.Context) {
	id, ok := h.ID(c)
	if !ok {
		return
	}
	t, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.Write(c, err, "Failed to fetch ticket")
		return
	}
	response.Success(c, http.StatusOK, t, "", nil)
}

func (h *TicketHandler) Create(c *gin.Context) {
	var req ticketRequest
	if !h.Bind(c, &req, missingTicketFields) {
		return
	}
	t := req.entity(0)
	if err := h.Svc.Create(c.Request.Context(), t); err != nil {
		h.Write(c, err, "Failed to create ticket")
		return
	}
	response.Success(c, http.StatusCreated, t, "Ticket created successfully", nil)
}

func (h *TicketHandler) Update(c *gin.Context) {
	id, ok := h.ID(c)
	if !ok {
		return
	}
	var req ticketRequest
	if !h.Bind(c, &req, missingTicketFields) {
		return
	}
	t := req.entity(id)
	if err := h.Svc.Update(c.Request.Context(), t); err != nil {
		h.Write(c, err, "Failed to update ticket")
		return
	}
	response.Success(c, http.StatusOK, t, "Ticket updated successfully", nil)
}

func (h *TicketHandler) Delete(c *gin.Context) {
	id, ok := h.ID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.Write(c, err, "Failed to delete ticket")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Ticket deleted successfully", nil)
}
