package entities

import (
	"errors"

	"github.com/rafabene/minipost-backend/internal/domain/valueobjects"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa um usuário do sistema
type User struct {
	ID       int64
	Email    valueobjects.Email
	Username string
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Email.String() == "" {
		return errors.New("email is required")
	}

	if u.Username == "" {
		return errors.New("username is required")
	}

	return nil
}
