package dto

import (
	"github.com/rafabene/minipost-backend/internal/domain/entities"
	"github.com/rafabene/minipost-backend/internal/services"
)

// CreatePostForm representa o multipart form de criação de postagem.
// O arquivo de imagem é lido à parte pelo handler (tamanho e MIME têm
// regras próprias).
type CreatePostForm struct {
	Title   string `form:"title" binding:"required"`
	Content string `form:"content" binding:"required"`
}

// UpdatePostRequest representa um update parcial de postagem
type UpdatePostRequest struct {
	Title   *string `json:"title" form:"title"`
	Content *string `json:"content" form:"content"`
}

// PostResponse representa a resposta de uma postagem.
// Em leituras o campo imageKey carrega a URL pré-assinada (ou null);
// em escritas carrega a chave recém gravada.
type PostResponse struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	ImageKey *string `json:"imageKey"`
	UserID   int64   `json:"userId"`
}

// ToPostResponse converte uma entidade Post para PostResponse com a
// chave crua (respostas de escrita)
func ToPostResponse(post *entities.Post) PostResponse {
	return PostResponse{
		ID:       post.ID,
		Title:    post.Title,
		Content:  post.Content,
		ImageKey: post.ImageKey,
		UserID:   post.UserID,
	}
}

// ToResolvedPostResponse converte uma postagem já resolvida: imageKey
// carrega a URL pré-assinada, nunca a chave crua
func ToResolvedPostResponse(p *services.PostWithURL) PostResponse {
	return PostResponse{
		ID:       p.Post.ID,
		Title:    p.Post.Title,
		Content:  p.Post.Content,
		ImageKey: p.ImageURL,
		UserID:   p.Post.UserID,
	}
}

// ToResolvedPostResponses converte uma lista de postagens resolvidas
func ToResolvedPostResponses(posts []*services.PostWithURL) []PostResponse {
	responses := make([]PostResponse, len(posts))
	for i, p := range posts {
		responses[i] = ToResolvedPostResponse(p)
	}
	return responses
}
