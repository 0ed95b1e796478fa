package repositories

import (
	"context"

	"github.com/rafabene/minipost-backend/internal/domain/entities"
)

// PostRepository define a interface para persistência de postagens.
// Operações com escopo composto (userID + postID) garantem que um
// usuário só alcança as próprias postagens. Resultado nil/vazio (sem
// erro) sinaliza "não encontrado".
type PostRepository interface {
	Create(ctx context.Context, post *entities.Post) error
	FindAll(ctx context.Context) ([]*entities.Post, error)
	FindByUser(ctx context.Context, userID int64) ([]*entities.Post, error)
	FindByUserAndID(ctx context.Context, userID, postID int64) (*entities.Post, error)
	UpdateByUserAndID(ctx context.Context, userID, postID int64, fields map[string]any) (*entities.Post, error)
	DeleteByUserAndID(ctx context.Context, userID, postID int64) (*entities.Post, error)
	DeleteByUser(ctx context.Context, userID int64) error
}
