package minio

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/rafabene/minipost-backend/internal/domain/ports"
	"github.com/rafabene/minipost-backend/internal/infrastructure/config"
)

// presignTTL é a validade das URLs de leitura geradas
const presignTTL = 24 * time.Hour

// keyPrefix agrupa todas as imagens sob um namespace no bucket
const keyPrefix = "images/"

// ImageStore implementa ports.ImageStore sobre um object storage
// compatível com S3 (MinIO)
type ImageStore struct {
	client *minio.Client
	bucket string
	logger ports.Logger
}

// NewImageStore cria o gateway de object storage
func NewImageStore(cfg *config.StorageConfig, log ports.Logger) (*ImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &ImageStore{
		client: client,
		bucket: cfg.Bucket,
		logger: log,
	}, nil
}

// EnsureBucket cria o bucket configurado caso ainda não exista
func (s *ImageStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
		s.logger.Info("bucket created successfully", "bucket", s.bucket)
	}

	return nil
}

// Upload grava o arquivo sob uma chave nova e pré-assina uma URL de
// leitura. Falha de escrita retorna erro: o chamador não deve persistir
// nenhuma linha referenciando a chave.
func (s *ImageStore) Upload(ctx context.Context, reader io.Reader, size int64, filename, contentType string) (string, string, error) {
	key := objectKey(filename)

	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image: %w", err)
	}

	url := s.PresignedURL(ctx, key)
	return key, url, nil
}

// PresignedURL gera uma URL GET com validade limitada.
// Falha de assinatura vira string vazia, não erro: imagem indisponível
// não é um erro fatal para quem lê.
func (s *ImageStore) PresignedURL(ctx context.Context, key string) string {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, presignTTL, nil)
	if err != nil {
		s.logger.Warn("failed to presign image url", "key", key, "error", err)
		return ""
	}
	return u.String()
}

// Delete remove o objeto. Chave vazia é um no-op de sucesso.
func (s *ImageStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete image %s: %w", key, err)
	}

	s.logger.Info("image deleted successfully", "key", key)
	return nil
}

// objectKey gera uma chave única preservando a extensão original
func objectKey(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return keyPrefix + uuid.NewString()
	}
	return fmt.Sprintf("%s%s.%s", keyPrefix, uuid.NewString(), ext)
}
