package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	identityapp "github.com/podstore/backoffice/internal/application/identity"
)

// UserHandler handles the dashboard user endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create godoc
// @Summary      Create a user
// @Description  The password, when given, is stored as a bcrypt hash
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identityapp.CreateUserRequest true "User"
// @Success      201 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200 {object} dto.Response{data=[]identityapp.UserResponse}
// @Security     BearerAuth
// @Router       /dashboard/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.GetAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, users)
}

// GetByID godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		h.BadRequest(c, "ID de usuario inválido")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Update godoc
// @Summary      Update a user
// @Description  Partial update; an empty password or role leaves the stored one
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        request body identityapp.UpdateUserRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/users/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		h.BadRequest(c, "ID de usuario inválido")
		return
	}

	var req identityapp.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Delete godoc
// @Summary      Delete a user
// @Description  Returns the removed user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		h.BadRequest(c, "ID de usuario inválido")
		return
	}

	user, err := h.userService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// userID reads the :id path parameter; user ids are opaque strings
func userID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	return id, id != "" && len(id) <= 64
}
