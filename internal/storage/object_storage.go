package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/befuji/studio-backend/internal/pkg/apperror"
)

// videoKeyPattern отбирает ключи видеофайлов при листинге бакета.
var videoKeyPattern = regexp.MustCompile(`(?i)\.(mp4|mov|webm)$`)

// ObjectStorage оборачивает S3-совместимый бакет (Cloudflare R2), в котором
// лежат и видеофайлы портфолио, и JSON-документы коллекций.
type ObjectStorage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

// Object описывает результат чтения объекта, включая поля частичного ответа.
type Object struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength *int64
	ContentRange  string
}

// VideoObject - элемент инвентаря видеофайлов бакета.
type VideoObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// New создаёт клиента объектного хранилища с явными ключами доступа.
func New(ctx context.Context, endpoint, accessKeyID, secretKey, bucket string) (*ObjectStorage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage: имя бакета не задано")
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx,
		awscfg.WithRegion("auto"),
		awscfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: не удалось собрать AWS конфигурацию: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &ObjectStorage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
	}, nil
}

// GetObject читает объект целиком.
func (s *ObjectStorage) GetObject(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, apperror.ErrObjectNotFound
		}
		return nil, fmt.Errorf("storage: чтение объекта %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("storage: чтение тела объекта %s: %w", key, err)
	}
	return data, nil
}

// PutObject полностью перезаписывает объект.
func (s *ObjectStorage) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("storage: запись объекта %s: %w", key, err)
	}
	return nil
}

// PresignPutURL выдаёт подписанный URL для прямой загрузки из браузера.
func (s *ObjectStorage) PresignPutURL(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("storage: подпись URL для %s: %w", key, err)
	}
	return req.URL, nil
}

// OpenObject открывает объект для проксирования, с поддержкой Range запросов.
// Закрыть Body обязан вызывающий.
func (s *ObjectStorage) OpenObject(ctx context.Context, key, rangeHeader string) (*Object, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if rangeHeader != "" {
		input.Range = aws.String(rangeHeader)
	}

	out, err := s.client.GetObject(ctx, input)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, apperror.ErrObjectNotFound
		}
		return nil, fmt.Errorf("storage: открытие объекта %s: %w", key, err)
	}

	obj := &Object{
		Body:          out.Body,
		ContentType:   aws.ToString(out.ContentType),
		ContentLength: out.ContentLength,
		ContentRange:  aws.ToString(out.ContentRange),
	}
	if obj.ContentType == "" {
		obj.ContentType = "video/mp4"
	}
	return obj, nil
}

// ListVideoKeys возвращает инвентарь видеофайлов бакета.
func (s *ObjectStorage) ListVideoKeys(ctx context.Context) ([]VideoObject, error) {
	var videos []VideoObject

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("storage: листинг бакета: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !videoKeyPattern.MatchString(key) {
				continue
			}
			videos = append(videos, VideoObject{
				Key:          key,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}
	return videos, nil
}

// SetupCORS настраивает бакет для прямых загрузок с сайта.
func (s *ObjectStorage) SetupCORS(ctx context.Context, allowedOrigins []string) error {
	_, err := s.client.PutBucketCors(ctx, &s3.PutBucketCorsInput{
		Bucket: aws.String(s.bucket),
		CORSConfiguration: &types.CORSConfiguration{
			CORSRules: []types.CORSRule{
				{
					AllowedOrigins: allowedOrigins,
					AllowedMethods: []string{"GET", "PUT", "HEAD"},
					AllowedHeaders: []string{"Content-Type", "Content-Length", "*"},
					MaxAgeSeconds:  aws.Int32(3600),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("storage: настройка CORS бакета: %w", err)
	}
	return nil
}

// Ping проверяет доступность бакета для health check.
func (s *ObjectStorage) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	return err
}

// isNoSuchKey распознаёт отсутствие ключа в ответе хранилища.
func isNoSuchKey(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	// R2 на HEAD/GET без тела может вернуть общий 404 без кода NoSuchKey.
	return strings.Contains(err.Error(), "StatusCode: 404")
}
