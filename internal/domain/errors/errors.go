package errors

import "errors"

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound   = errors.New("error.user_not_found")
	ErrPostNotFound   = errors.New("error.post_not_found")
	ErrNoPostsFound   = errors.New("error.no_posts_found")
	ErrNoDataProvided = errors.New("error.no_data_provided")
	ErrInvalidID      = errors.New("error.invalid_id")
)

// Upstream errors
// Falhas de banco ou de object storage viram respostas 500 genéricas;
// estes códigos existem para os handlers distinguirem a origem no log.
var (
	ErrImageUpload = errors.New("error.image_upload_failed")
	ErrImageDelete = errors.New("error.image_delete_failed")
)

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Code    error
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is permite errs.Is(err, ErrImageDelete) em erros enriquecidos
func (e *DomainError) Is(target error) bool {
	return errors.Is(e.Code, target)
}

// Wrap cria um DomainError ligando um código de negócio à causa upstream
func Wrap(code error, message string, err error) *DomainError {
	return &DomainError{Code: code, Message: message, Err: err}
}
