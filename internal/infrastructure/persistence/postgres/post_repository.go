package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/minipost-backend/internal/domain/entities"
	"github.com/rafabene/minipost-backend/internal/domain/repositories"
)

// PostRepository implementa repositories.PostRepository
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository cria um novo PostRepository
func NewPostRepository(db *gorm.DB) repositories.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *entities.Post) error {
	model := r.toModel(post)

	// Omit evita que o GORM tente criar o usuário dono junto
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return err
	}

	post.ID = model.ID
	return nil
}

func (r *PostRepository) FindAll(ctx context.Context) ([]*entities.Post, error) {
	var models []*PostModel

	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}

	return r.toEntities(models), nil
}

func (r *PostRepository) FindByUser(ctx context.Context, userID int64) ([]*entities.Post, error) {
	var models []*PostModel

	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&models).Error; err != nil {
		return nil, err
	}

	return r.toEntities(models), nil
}

func (r *PostRepository) FindByUserAndID(ctx context.Context, userID, postID int64) (*entities.Post, error) {
	var model PostModel

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, postID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

// UpdateByUserAndID aplica um update parcial com escopo composto e
// retorna a linha atualizada. Um único statement com RETURNING.
func (r *PostRepository) UpdateByUserAndID(ctx context.Context, userID, postID int64, fields map[string]any) (*entities.Post, error) {
	var model PostModel

	tx := r.db.WithContext(ctx).
		Model(&model).
		Clauses(clause.Returning{}).
		Where("user_id = ? AND id = ?", userID, postID).
		Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}

	return r.toEntity(&model), nil
}

// DeleteByUserAndID remove a postagem e retorna a linha removida
func (r *PostRepository) DeleteByUserAndID(ctx context.Context, userID, postID int64) (*entities.Post, error) {
	var model PostModel

	tx := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("user_id = ? AND id = ?", userID, postID).
		Delete(&model)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}

	return r.toEntity(&model), nil
}

// DeleteByUser remove todas as postagens de um usuário (cascata antes
// de remover o próprio usuário, por causa da FK)
func (r *PostRepository) DeleteByUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&PostModel{}).Error
}

// Conversores
func (r *PostRepository) toModel(post *entities.Post) *PostModel {
	return &PostModel{
		ID:       post.ID,
		Title:    post.Title,
		Content:  post.Content,
		ImageKey: post.ImageKey,
		UserID:   post.UserID,
	}
}

func (r *PostRepository) toEntity(model *PostModel) *entities.Post {
	return &entities.Post{
		ID:       model.ID,
		Title:    model.Title,
		Content:  model.Content,
		ImageKey: model.ImageKey,
		UserID:   model.UserID,
	}
}

func (r *PostRepository) toEntities(models []*PostModel) []*entities.Post {
	posts := make([]*entities.Post, 0, len(models))
	for _, model := range models {
		posts = append(posts, r.toEntity(model))
	}
	return posts
}
