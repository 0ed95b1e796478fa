package repositories

import (
	"context"

	"github.com/rafabene/minipost-backend/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários.
// Resultado nil (sem erro) sinaliza "não encontrado"; erro é reservado
// para falha do banco.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindAll(ctx context.Context) ([]*entities.User, error)
	UpdateByID(ctx context.Context, id int64, fields map[string]any) (*entities.User, error)
	DeleteByID(ctx context.Context, id int64) (*entities.User, error)
}
