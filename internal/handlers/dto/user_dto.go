package dto

import (
	"github.com/rafabene/minipost-backend/internal/domain/entities"
)

// CreateUserRequest representa a requisição para criar um usuário
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=1"`
}

// UpdateUserRequest representa a requisição para atualizar um usuário.
// Todos os campos são opcionais; os presentes seguem as mesmas regras
// da criação.
type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Username *string `json:"username" binding:"omitempty,min=1"`
}

// UserResponse representa a resposta de um usuário
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Email:    user.Email.String(),
		Username: user.Username,
	}
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}
