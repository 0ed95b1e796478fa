package http

import (
	errs "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/minipost-backend/internal/domain/errors"
	"github.com/rafabene/minipost-backend/internal/domain/valueobjects"
	"github.com/rafabene/minipost-backend/internal/handlers/dto"
	"github.com/rafabene/minipost-backend/internal/services"
)

// UserHandler lida com requisições HTTP relacionadas a usuários
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers lista todos os usuários
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Message(c, "error.load_users"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": dto.ToUserResponses(users)})
}

// ListUserPosts lista as postagens de um usuário. Neste caminho lista
// vazia é 404, não 200 (contrato herdado da API original).
func (h *UserHandler) ListUserPosts(c *gin.Context) {
	userID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Message(c, "error.invalid_id"))
		return
	}

	posts, err := h.userService.ListUserPosts(c.Request.Context(), userID)
	if err != nil {
		if errs.Is(err, errors.ErrNoPostsFound) {
			c.JSON(http.StatusNotFound, dto.Message(c, "error.no_posts_found"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Message(c, "error.internal"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": dto.T(c, "message.posts_found"),
		"posts":   dto.ToResolvedPostResponses(posts),
	})
}

// CreateUser cria um novo usuário
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(c, err))
		return
	}

	_, err := h.userService.CreateUser(c.Request.Context(), services.CreateUserInput{
		Email:    req.Email,
		Username: req.Username,
	})
	if err != nil {
		// O binding aceita alguns formatos que o value object rejeita;
		// a falha continua sendo de validação, não do servidor
		if errs.Is(err, valueobjects.ErrInvalidEmail) {
			c.JSON(http.StatusBadRequest, dto.FieldErrorResponse(c, "email", "error.invalid_email"))
			return
		}
		// Email duplicado não é distinguido de outras falhas de insert
		c.JSON(http.StatusInternalServerError, dto.Message(c, "error.internal"))
		return
	}

	c.JSON(http.StatusOK, dto.Message(c, "message.user_created"))
}

// UpdateUser aplica um update parcial em um usuário
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Message(c, "error.invalid_id"))
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(c, err))
		return
	}

	_, err = h.userService.UpdateUser(c.Request.Context(), id, services.UpdateUserInput{
		Email:    req.Email,
		Username: req.Username,
	})
	if err != nil {
		switch {
		case errs.Is(err, valueobjects.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, dto.FieldErrorResponse(c, "email", "error.invalid_email"))
		case errs.Is(err, errors.ErrNoDataProvided):
			c.JSON(http.StatusBadRequest, dto.Message(c, "error.no_data_provided"))
		case errs.Is(err, errors.ErrUserNotFound):
			c.JSON(http.StatusNotFound, dto.Message(c, "error.user_not_found"))
		default:
			c.JSON(http.StatusInternalServerError, dto.Message(c, "error.internal"))
		}
		return
	}

	c.JSON(http.StatusOK, dto.Message(c, "message.user_updated"))
}

// DeleteUser remove um usuário em cascata (imagens, postagens, linha)
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Message(c, "error.invalid_id"))
		return
	}

	deleted, err := h.userService.DeleteUser(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, errors.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, dto.Message(c, "error.user_not_found"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Message(c, "error.internal"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    dto.T(c, "message.user_deleted"),
		"deleteUser": dto.ToUserResponse(deleted),
	})
}
