package services

import (
	"context"

	"github.com/rafabene/minipost-backend/internal/domain/entities"
	"github.com/rafabene/minipost-backend/internal/domain/errors"
	"github.com/rafabene/minipost-backend/internal/domain/ports"
	"github.com/rafabene/minipost-backend/internal/domain/repositories"
	"github.com/rafabene/minipost-backend/internal/domain/valueobjects"
)

// UserService contém a lógica de negócio para usuários
type UserService struct {
	userRepo repositories.UserRepository
	postRepo repositories.PostRepository
	store    ports.ImageStore
	logger   ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	store ports.ImageStore,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		postRepo: postRepo,
		store:    store,
		logger:   logger,
	}
}

// CreateUserInput representa os dados para criar um usuário
type CreateUserInput struct {
	Email    string
	Username string
}

// UpdateUserInput representa um update parcial de usuário.
// Campos nil ficam inalterados.
type UpdateUserInput struct {
	Email    *string
	Username *string
}

// ListUsers retorna todos os usuários
func (s *UserService) ListUsers(ctx context.Context) ([]*entities.User, error) {
	return s.userRepo.FindAll(ctx)
}

// ListUserPosts retorna as postagens de um usuário com URLs resolvidas.
// Este caminho trata lista vazia como não-encontrado, um contrato
// externo diferente do ListUserPosts do PostService.
func (s *UserService) ListUserPosts(ctx context.Context, userID int64) ([]*PostWithURL, error) {
	posts, err := s.postRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, errors.ErrNoPostsFound
	}

	resolved := make([]*PostWithURL, 0, len(posts))
	for _, post := range posts {
		var url *string
		if post.HasImage() {
			if u := s.store.PresignedURL(ctx, *post.ImageKey); u != "" {
				url = &u
			}
		}
		resolved = append(resolved, &PostWithURL{Post: post, ImageURL: url})
	}
	return resolved, nil
}

// CreateUser cria um novo usuário. Email duplicado aparece como erro
// genérico de insert (o contrato não distingue esse caso).
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*entities.User, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:    email,
		Username: input.Username,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", "user_id", user.ID, "email", user.Email.String())
	return user, nil
}

// UpdateUser aplica um update parcial. Payload vazio é rejeitado antes
// de qualquer acesso ao banco.
func (s *UserService) UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (*entities.User, error) {
	fields := map[string]any{}

	if input.Email != nil {
		email, err := valueobjects.NewEmail(*input.Email)
		if err != nil {
			return nil, err
		}
		fields["email"] = email.String()
	}
	if input.Username != nil {
		fields["username"] = *input.Username
	}

	if len(fields) == 0 {
		return nil, errors.ErrNoDataProvided
	}

	user, err := s.userRepo.UpdateByID(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	s.logger.Info("user updated", "user_id", id)
	return user, nil
}

// DeleteUser remove um usuário em cascata: primeiro TODAS as imagens
// das postagens dele saem do storage (qualquer falha aborta tudo antes
// de tocar o banco), depois as postagens, por fim a linha do usuário.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (*entities.User, error) {
	posts, err := s.postRepo.FindByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	// Cascata tudo-ou-nada, não melhor-esforço
	for _, post := range posts {
		if post.HasImage() {
			if err := s.store.Delete(ctx, *post.ImageKey); err != nil {
				return nil, errors.Wrap(errors.ErrImageDelete, "failed to delete user post image", err)
			}
		}
	}

	if err := s.postRepo.DeleteByUser(ctx, id); err != nil {
		return nil, err
	}

	user, err := s.userRepo.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	s.logger.Info("user deleted", "user_id", id, "posts_removed", len(posts))
	return user, nil
}
