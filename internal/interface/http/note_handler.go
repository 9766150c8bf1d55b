package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/notegenius-api/internal/application"
	"github.com/oksasatya/notegenius-api/internal/domain/entity"
	"github.com/oksasatya/notegenius-api/pkg/response"
)

const missingNoteFields = "Missing required fields: title, category, description, user_id"

type NoteHandler struct {
	Svc *application.NoteService
	Errors
}

func NewNoteHandler(svc *application.NoteService, errs Errors) *NoteHandler {
	return &NoteHandler{Svc: svc, Errors: errs}
}

type noteRequest struct {
	Title       string `json:"title" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description" binding:"required"`
	UserID      int64  `json:"user_id" binding:"required"`
}

func (r noteRequest) entity(id int64) *entity.Note {
	return &entity.Note{ID: id, Title: r.Title, Category: r.Category, Description: r.Description, UserID: r.UserID}
}

func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Write(c, err, "Failed to fetch notes")
		return
	}
	response.Success(c, http.StatusOK, notes, "", nil)
}

func (h *NoteHandler) Get(c *gin.Context) {
	id, ok := h.ID(c)
	if !ok {
		return
	}
	n, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.Write(c, err, "Failed to fetch note")
		return
	}
	response.Success(c, http.StatusOK, n, "", nil)
}

func (h *NoteHandler) Create(c *gin.Context) {
	var req noteRequest
	if !h.Bind(c, &req, missingNoteFields) {
		return
	}
	n := req.entity(0)
	if err := h.Svc.Create(c.Request.Context(), n); err != nil {
		h.Write(c, err, "Failed to create note")
		return
	}
	response.Success(c, http.StatusCreated, n, "Note created successfully", nil)
}

func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := h.ID(c)
	if !ok {
		return
	}
	var req noteRequest
	if !h.Bind(c, &req, missingNoteFields) {
		return
	}
	n := req.entity(id)
	if err := h.Svc.Update(c.Request.Context(), n); err != nil {
		h.Write(c, err, "Failed to update note")
		return
	}
	response.Success(c, http.StatusOK, n, "Note updated successfully", nil)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := h.ID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.Write(c, err, "Failed to delete note")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Note deleted successfully", nil)
}
