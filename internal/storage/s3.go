package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3API часть клиента S3, которая нужна хранилищу.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage кладёт файлы в бакет S3 (или совместимое хранилище).
type S3Storage struct {
	client     s3API
	bucket     string
	publicBase string
}

// NewS3Storage загружает AWS конфигурацию из окружения.
// endpoint задаётся для LocalStack или MinIO.
func NewS3Storage(ctx context.Context, bucket, endpoint, publicBase string) (*S3Storage, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: не удалось загрузить конфигурацию AWS: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.UsePathStyle = true
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return newS3Storage(client, bucket, publicBase), nil
}

func newS3Storage(client s3API, bucket, publicBase string) *S3Storage {
	return &S3Storage{client: client, bucket: bucket, publicBase: publicBase}
}

// Put загружает объект. SDK подписывает тело целиком, а по http (MinIO, LocalStack)
// не принимает потоки без Seek, поэтому такое тело сначала читается в память.
// Размер резюме ограничен MAX_UPLOAD_MB.
func (s *S3Storage) Put(ctx context.Context, folder, originalName, contentType string, size int64, r io.Reader) (string, error) {
	key := objectKey(folder, originalName)

	body, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("storage: не удалось прочитать файл %s: %w", key, err)
		}
		body = bytes.NewReader(data)
		size = int64(len(data))
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("storage: не удалось загрузить %s в бакет %s: %w", key, s.bucket, err)
	}
	return publicURL(s.publicBase, key), nil
}
