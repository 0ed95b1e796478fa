package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/minipost-backend/internal/domain/entities"
	"github.com/rafabene/minipost-backend/internal/domain/repositories"
	"github.com/rafabene/minipost-backend/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	user.ID = model.ID
	return nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entities.User, error) {
	var models []*UserModel

	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}

	return r.toEntities(models)
}

// UpdateByID aplica um update parcial e retorna a linha atualizada.
// RETURNING em um único statement, como o caminho de update original.
func (r *UserRepository) UpdateByID(ctx context.Context, id int64, fields map[string]any) (*entities.User, error) {
	var model UserModel

	tx := r.db.WithContext(ctx).
		Model(&model).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}

	return r.toEntity(&model)
}

// DeleteByID remove o usuário e retorna a linha removida
func (r *UserRepository) DeleteByID(ctx context.Context, id int64) (*entities.User, error) {
	var model UserModel

	tx := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&model)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}

	return r.toEntity(&model)
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:       user.ID,
		Email:    user.Email.String(),
		Username: user.Username,
	}
}

func (r *UserRepository) toEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	return &entities.User{
		ID:       model.ID,
		Email:    email,
		Username: model.Username,
	}, nil
}

func (r *UserRepository) toEntities(models []*UserModel) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(models))

	for _, model := range models {
		user, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}
