package entities

import "errors"

var (
	ErrInvalidPostData = errors.New("invalid post data")
)

// Post representa uma postagem de um usuário.
// ImageKey guarda a chave opaca do objeto no storage (nunca uma URL);
// nil quando a postagem não tem imagem anexada.
type Post struct {
	ID       int64
	Title    string
	Content  string
	ImageKey *string
	UserID   int64
}

// HasImage verifica se a postagem tem uma imagem associada
func (p *Post) HasImage() bool {
	return p.ImageKey != nil && *p.ImageKey != ""
}

// Validate valida regras de negócio da entidade Post
func (p *Post) Validate() error {
	if p.Title == "" {
		return errors.New("title is required")
	}

	if p.Content == "" {
		return errors.New("content is required")
	}

	if p.UserID <= 0 {
		return errors.New("post must belong to a user")
	}

	return nil
}
