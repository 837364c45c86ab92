// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bovita/catalog-backend/internal/config"
)

// ImagePayload is one binary image to be uploaded, already read off the wire.
type ImagePayload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageStore is the external object store that turns image bytes into
// durable URLs and deletes objects by key.
type ImageStore interface {
	Upload(ctx context.Context, img ImagePayload) (string, error)
	Destroy(ctx context.Context, key string) error
	KeyFromURL(url string) string
}

// StorageService is the S3-backed ImageStore. Without AWS credentials it
// falls back to simulated local URLs for development.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Return service without S3 for local development
		return &StorageService{config: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

func (s *StorageService) Upload(ctx context.Context, img ImagePayload) (string, error) {
	if maxSize := s.config.Upload.MaxSizeMB * 1024 * 1024; maxSize > 0 && int64(len(img.Data)) > maxSize {
		return "", fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", len(img.Data), maxSize)
	}

	if !isValidImageType(img.Data) {
		return "", fmt.Errorf("file %s is not a supported image", img.Filename)
	}

	key := s.generateKey()

	if s.s3Client != nil {
		return s.uploadToS3(ctx, img, key)
	}

	return s.uploadToLocal(img, key)
}

func (s *StorageService) uploadToS3(ctx context.Context, img ImagePayload, key string) (string, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(img.Data),
		ContentType:   aws.String(img.ContentType),
		ContentLength: aws.Int64(int64(len(img.Data))),
		ACL:           aws.String("public-read"),
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.objectURL(key), nil
}

func (s *StorageService) uploadToLocal(img ImagePayload, key string) (string, error) {
	// Local development has no object store; hand back a URL the dev
	// static route can serve.
	return fmt.Sprintf("http://localhost:%s/uploads/%s", s.config.Server.Port, key), nil
}

func (s *StorageService) Destroy(ctx context.Context, key string) error {
	if s.s3Client == nil {
		logrus.WithField("key", key).Debug("local storage: skipping object delete")
		return nil
	}

	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	return nil
}

// KeyFromURL derives the object key from a stored URL: the path segment
// between the last '/' and the extension, under the configured folder.
func (s *StorageService) KeyFromURL(url string) string {
	segment := url
	if idx := strings.LastIndex(segment, "/"); idx >= 0 {
		segment = segment[idx+1:]
	}
	if idx := strings.Index(segment, "."); idx >= 0 {
		segment = segment[:idx]
	}
	if segment == "" {
		return ""
	}
	return s.config.Upload.Folder + "/" + segment
}

// generateKey builds a unique object key. Keys carry no extension so the
// URL-to-key derivation in KeyFromURL stays lossless.
func (s *StorageService) generateKey() string {
	timestamp := time.Now().Format("20060102")
	name := fmt.Sprintf("%s_%s", timestamp, uuid.New().String()[:8])
	return s.config.Upload.Folder + "/" + name
}

func (s *StorageService) objectURL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.config.AWS.CloudFrontURL, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}

func isValidImageType(buffer []byte) bool {
	// JPEG
	if len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF {
		return true
	}

	// PNG
	if len(buffer) >= 8 && buffer[0] == 0x89 && buffer[1] == 0x50 && buffer[2] == 0x4E && buffer[3] == 0x47 {
		return true
	}

	// GIF
	if len(buffer) >= 6 && (string(buffer[0:6]) == "GIF87a" || string(buffer[0:6]) == "GIF89a") {
		return true
	}

	// WebP
	if len(buffer) >= 12 && string(buffer[0:4]) == "RIFF" && string(buffer[8:12]) == "WEBP" {
		return true
	}

	return false
}
