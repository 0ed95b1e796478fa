package dto

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// MessageResponse é o envelope padrão {message} das respostas da API
type MessageResponse struct {
	Message string `json:"message"`
}

// FieldError representa um erro de validação de campo
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// ValidationErrorResponse carrega a lista estruturada de erros de campo
// junto com a mensagem geral
type ValidationErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Message cria um envelope {message} traduzido
func Message(c *gin.Context, key string, params ...map[string]interface{}) MessageResponse {
	return MessageResponse{Message: T(c, key, params...)}
}

// NewValidationErrorResponse converte falhas de binding do Gin na lista
// estruturada de erros de campo
func NewValidationErrorResponse(c *gin.Context, err error) ValidationErrorResponse {
	response := ValidationErrorResponse{
		Message: T(c, "error.validation"),
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fe := range validationErrs {
			response.Errors = append(response.Errors, FieldError{
				Field:   fe.Field(),
				Message: fieldErrorMessage(fe),
				Tag:     fe.Tag(),
			})
		}
	}

	return response
}

// FieldErrorResponse cria uma resposta de validação para um único campo
// com uma mensagem específica (limites de imagem, por exemplo)
func FieldErrorResponse(c *gin.Context, field, key string) ValidationErrorResponse {
	message := T(c, key)
	return ValidationErrorResponse{
		Message: message,
		Errors: []FieldError{
			{Field: field, Message: message},
		},
	}
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "this should be a valid email"
	case "min":
		return "value is too short"
	case "max":
		return "value is too long"
	default:
		return "invalid value"
	}
}
