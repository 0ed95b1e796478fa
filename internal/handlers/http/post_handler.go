package http

import (
	errs "errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/minipost-backend/internal/domain/errors"
	"github.com/rafabene/minipost-backend/internal/handlers/dto"
	"github.com/rafabene/minipost-backend/internal/services"
)

// maxImageSize é o limite de upload de imagem em bytes
const maxImageSize = 5_000_000

// imageContentType é o único MIME aceito para imagens
const imageContentType = "image/png"

// PostHandler lida com requisições HTTP relacionadas a postagens
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler cria um novo PostHandler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// ListPosts lista todas as postagens com URLs de imagem resolvidas
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Message(c, "error.fetch_posts"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": dto.ToResolvedPostResponses(posts)})
}

// GetPost busca uma postagem pelo par (userid, postid)
func (h *PostHandler) GetPost(c *gin.Context) {
	userID, err := parseID(c.Param("userid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Message(c, "error.invalid_id"))
		return
	}
	postID, err := parseID(c.Param("postid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Message(c, "error.invalid_id"))
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), userID, postID)
	if err != nil {
		if errs.Is(err, errors.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, dto.Message(c, "error.post_not_found"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Message(c, "error.internal"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": dto.ToResolvedPostResponse(post)})
}

// ListUserPosts lista as postagens de um usuário. Lista vazia é uma
// resposta 200 com mensagem, não um erro.
func (h *PostHandler) ListUserPosts(c *gin.Context) {
	userID, err := parseID(c.Param("userid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Message(c, "error.invalid_id"))
		return
	}

	posts, err := h.postService.ListUserPosts(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Message(c, "error.internal"))
		return
	}

	if len(posts) == 0 {
		c.JSON(http.StatusOK, dto.Message(c, "error.no_posts_found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": dto.ToResolvedPostResponses(posts)})
}

// CreatePost cria uma postagem a partir de um multipart form com
// imagem opcional. A validação toda acontece antes de qualquer efeito
// colateral: nada é subido nem inserido se o payload for inválido.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Message(c, "error.invalid_id"))
		return
	}

	var form dto.CreatePostForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(c, err))
		return
	}

	input := services.CreatePostInput{
		Title:   form.Title,
		Content: form.Content,
	}

	file, ok := h.bindImage(c)
	if !ok {
		return
	}
	if file != nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.Message(c, "error.internal"))
			return
		}
		defer f.Close()

		input.Image = &services.ImageInput{
			Reader:      f,
			Size:        file.Size,
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
		}
	}

	post, err := h.postService.CreatePost(c.Request.Context(), userID, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Message(c, "error.internal"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": dto.T(c, "message.post_created"),
		"newPost": dto.ToPostResponse(post),
	})
}

// UpdatePost aplica um update parcial. Aceita JSON (title/content) ou
// multipart form quando a imagem também deve ser trocada.
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, err := parseID(c.Param("userid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Message(c, "error.invalid_id"))
		return
	}
	postID, err := parseID(c.Param("postid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Message(c, "error.invalid_id"))
		return
	}

	var req dto.UpdatePostRequest
	input := services.UpdatePostInput{}

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(c, err))
			return
		}

		file, ok := h.bindImage(c)
		if !ok {
			return
		}
		if file != nil {
			f, err := file.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, dto.Message(c, "error.internal"))
				return
			}
			defer f.Close()

			input.Image = &services.ImageInput{
				Reader:      f,
				Size:        file.Size,
				Filename:    file.Filename,
				ContentType: file.Header.Get("Content-Type"),
			}
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(c, err))
			return
		}
	}

	input.Title = req.Title
	input.Content = req.Content

	_, err = h.postService.UpdatePost(c.Request.Context(), userID, postID, input)
	if err != nil {
		switch {
		case errs.Is(err, errors.ErrPostNotFound):
			c.JSON(http.StatusNotFound, dto.Message(c, "error.post_not_found"))
		case errs.Is(err, errors.ErrNoDataProvided):
			c.JSON(http.StatusBadRequest, dto.Message(c, "error.no_data_provided"))
		default:
			c.JSON(http.StatusInternalServerError, dto.Message(c, "error.internal"))
		}
		return
	}

	c.JSON(http.StatusOK, dto.Message(c, "message.post_updated"))
}

// DeletePost remove uma postagem e devolve a linha removida
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, err := parseID(c.Param("userid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Message(c, "error.invalid_id"))
		return
	}
	postID, err := parseID(c.Param("postid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Message(c, "error.invalid_id"))
		return
	}

	deleted, err := h.postService.DeletePost(c.Request.Context(), userID, postID)
	if err != nil {
		if errs.Is(err, errors.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, dto.Message(c, "error.post_not_found"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Message(c, "error.internal"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     dto.T(c, "message.post_deleted"),
		"deletedPost": dto.ToPostResponse(deleted),
	})
}

// bindImage lê o arquivo opcional "image" do form e aplica os limites
// de tamanho e MIME. Retorna ok=false quando a resposta já foi escrita.
func (h *PostHandler) bindImage(c *gin.Context) (*multipart.FileHeader, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		if errs.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(c, err))
		return nil, false
	}

	if file.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, dto.FieldErrorResponse(c, "image", "error.image_too_large"))
		return nil, false
	}

	if file.Header.Get("Content-Type") != imageContentType {
		c.JSON(http.StatusBadRequest, dto.FieldErrorResponse(c, "image", "error.image_wrong_type"))
		return nil, false
	}

	return file, true
}
