package services

import (
	"context"
	"io"

	"github.com/rafabene/minipost-backend/internal/domain/entities"
	"github.com/rafabene/minipost-backend/internal/domain/errors"
	"github.com/rafabene/minipost-backend/internal/domain/ports"
	"github.com/rafabene/minipost-backend/internal/domain/repositories"
)

// ImageInput carrega um arquivo de imagem já validado pela camada HTTP
// (tamanho e MIME conferidos antes de chegar aqui)
type ImageInput struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// PostWithURL é uma postagem com a chave de imagem já resolvida em URL
// pré-assinada. ImageURL nil = sem imagem ou imagem indisponível; a
// chave crua nunca sai para leitores.
type PostWithURL struct {
	Post     *entities.Post
	ImageURL *string
}

// PostService contém a lógica de negócio para postagens
type PostService struct {
	postRepo repositories.PostRepository
	store    ports.ImageStore
	logger   ports.Logger
}

// NewPostService cria um novo PostService
func NewPostService(
	postRepo repositories.PostRepository,
	store ports.ImageStore,
	logger ports.Logger,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		store:    store,
		logger:   logger,
	}
}

// CreatePostInput representa os dados para criar uma postagem
type CreatePostInput struct {
	Title   string
	Content string
	Image   *ImageInput
}

// UpdatePostInput representa um update parcial de postagem.
// Campos nil ficam inalterados.
type UpdatePostInput struct {
	Title   *string
	Content *string
	Image   *ImageInput
}

// ListPosts retorna todas as postagens com URLs de imagem resolvidas
func (s *PostService) ListPosts(ctx context.Context) ([]*PostWithURL, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, posts), nil
}

// ListUserPosts retorna as postagens de um usuário. Resultado vazio é
// uma resposta válida, não um erro.
func (s *PostService) ListUserPosts(ctx context.Context, userID int64) ([]*PostWithURL, error) {
	posts, err := s.postRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, posts), nil
}

// GetPost busca uma postagem pelo par (userID, postID)
func (s *PostService) GetPost(ctx context.Context, userID, postID int64) (*PostWithURL, error) {
	post, err := s.postRepo.FindByUserAndID(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.ErrPostNotFound
	}
	return s.resolve(ctx, post), nil
}

// CreatePost cria uma postagem, subindo a imagem antes de inserir a
// linha. Upload com falha aborta sem tocar o banco; falha de insert
// depois do upload deixa uma imagem órfã no storage (risco aceito).
func (s *PostService) CreatePost(ctx context.Context, userID int64, input CreatePostInput) (*entities.Post, error) {
	var imageKey *string

	if input.Image != nil {
		key, _, err := s.store.Upload(ctx, input.Image.Reader, input.Image.Size, input.Image.Filename, input.Image.ContentType)
		if err != nil {
			return nil, errors.Wrap(errors.ErrImageUpload, "failed to upload post image", err)
		}
		imageKey = &key
		s.logger.Info("post image uploaded", "key", key, "user_id", userID)
	}

	post := &entities.Post{
		Title:    input.Title,
		Content:  input.Content,
		ImageKey: imageKey,
		UserID:   userID,
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created", "post_id", post.ID, "user_id", userID)
	return post, nil
}

// UpdatePost aplica um update parcial com escopo (userID, postID).
// Imagem nova substitui a antiga: sobe a nova, troca a chave na linha e
// só então remove a antiga do storage.
func (s *PostService) UpdatePost(ctx context.Context, userID, postID int64, input UpdatePostInput) (*entities.Post, error) {
	fields := map[string]any{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Content != nil {
		fields["content"] = *input.Content
	}

	var oldKey *string
	if input.Image != nil {
		existing, err := s.postRepo.FindByUserAndID(ctx, userID, postID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, errors.ErrPostNotFound
		}
		oldKey = existing.ImageKey

		key, _, err := s.store.Upload(ctx, input.Image.Reader, input.Image.Size, input.Image.Filename, input.Image.ContentType)
		if err != nil {
			return nil, errors.Wrap(errors.ErrImageUpload, "failed to upload replacement image", err)
		}
		fields["image_key"] = key
	}

	if len(fields) == 0 {
		return nil, errors.ErrNoDataProvided
	}

	updated, err := s.postRepo.UpdateByUserAndID(ctx, userID, postID, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errors.ErrPostNotFound
	}

	// Substituir, não acumular: a imagem antiga sai do storage depois
	// que a linha já aponta para a nova
	if input.Image != nil && oldKey != nil && *oldKey != "" {
		if err := s.store.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete replaced image", "key", *oldKey, "error", err)
		}
	}

	s.logger.Info("post updated", "post_id", postID, "user_id", userID)
	return updated, nil
}

// DeletePost remove uma postagem. A imagem sai do storage ANTES da
// linha; se a remoção da imagem falhar a linha permanece no banco
// (fail-closed, sem objetos órfãos referenciados por linha nenhuma).
func (s *PostService) DeletePost(ctx context.Context, userID, postID int64) (*entities.Post, error) {
	post, err := s.postRepo.FindByUserAndID(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.ErrPostNotFound
	}

	if post.HasImage() {
		if err := s.store.Delete(ctx, *post.ImageKey); err != nil {
			return nil, errors.Wrap(errors.ErrImageDelete, "failed to delete post image", err)
		}
	}

	deleted, err := s.postRepo.DeleteByUserAndID(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, errors.ErrPostNotFound
	}

	s.logger.Info("post deleted", "post_id", postID, "user_id", userID)
	return deleted, nil
}

// resolve troca a chave de imagem por uma URL pré-assinada.
// Falha de assinatura vira imagem indisponível (nil), nunca erro.
func (s *PostService) resolve(ctx context.Context, post *entities.Post) *PostWithURL {
	var url *string
	if post.HasImage() {
		if u := s.store.PresignedURL(ctx, *post.ImageKey); u != "" {
			url = &u
		}
	}
	return &PostWithURL{Post: post, ImageURL: url}
}

func (s *PostService) resolveAll(ctx context.Context, posts []*entities.Post) []*PostWithURL {
	resolved := make([]*PostWithURL, 0, len(posts))
	for _, post := range posts {
		resolved = append(resolved, s.resolve(ctx, post))
	}
	return resolved
}
