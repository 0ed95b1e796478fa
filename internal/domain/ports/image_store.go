package ports

import (
	"context"
	"io"
)

// ImageStore define a interface para o gateway de object storage.
// A chave retornada é opaca (images/<uuid>.<ext>); quem resolve chave
// em URL pré-assinada é o próprio gateway.
type ImageStore interface {
	// Upload grava os bytes sob uma chave nova e retorna a chave e uma
	// URL pré-assinada recém gerada. Falha de escrita retorna erro e
	// nenhuma linha do banco deve referenciar a chave.
	Upload(ctx context.Context, reader io.Reader, size int64, filename, contentType string) (key string, url string, err error)

	// PresignedURL retorna uma URL GET com tempo de vida limitado.
	// Falha de assinatura retorna string vazia, não erro: o chamador
	// trata "" como imagem indisponível.
	PresignedURL(ctx context.Context, key string) string

	// Delete remove o objeto. Chave vazia é um no-op de sucesso.
	Delete(ctx context.Context, key string) error
}
