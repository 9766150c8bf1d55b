package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/notegenius-api/internal/application"
	"github.com/oksasatya/notegenius-api/pkg/response"
)

type UserHandler struct {
	Svc *application.UserService
	Errors
}

func NewUserHandler(svc *application.UserService, errs Errors) *UserHandler {
	return &UserHandler{Svc: svc, Errors: errs}
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// Welcome GET /api
func Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, response.NewBase(c, http.StatusOK, true, "Welcome to the User API!"))
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Write(c, err, "Failed to fetch users")
		return
	}
	response.Success(c, http.StatusOK, users, "", nil)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.ID(c)
	if !ok {
		return
	}
	u, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.Write(c, err, "Failed to fetch user")
		return
	}
	response.Success(c, http.StatusOK, u, "", nil)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if !h.Bind(c, &req, "Missing required fields: name, email, password") {
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.Write(c, err, "Failed to create user")
		return
	}
	response.Success(c, http.StatusCreated, u, "User created successfully", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.ID(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if !h.Bind(c, &req, "Name and email are required") {
		return
	}
	if err := h.Svc.Update(c.Request.Context(), id, req.Name, req.Email); err != nil {
		h.Write(c, err, "Failed to update user")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "name": req.Name, "email": req.Email}, "User updated successfully", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.ID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.Write(c, err, "Failed to delete user")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "User deleted successfully", nil)
}
