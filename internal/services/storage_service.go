// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/freshcart/freshcart-backend/internal/config"
	"github.com/freshcart/freshcart-backend/internal/i18n"
)

// LocalUploadDir is served at /uploads when S3 is not configured.
const LocalUploadDir = "uploads"

type StorageService struct {
	s3Client s3iface.S3API
	config   *config.Config
	localDir string
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

type UploadOptions struct {
	Folder       string
	MaxSize      int64 // in bytes
	AllowedTypes []string
	IsPublic     bool
}

func NewStorageService(config *config.Config) (*StorageService, error) {
	if config.AWS.AccessKeyID == "" {
		// Local disk for development
		return &StorageService{config: config, localDir: LocalUploadDir}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

// NewStorageServiceWithClient is used by tests to inject an S3 double.
func NewStorageServiceWithClient(config *config.Config, client s3iface.S3API, localDir string) *StorageService {
	return &StorageService{s3Client: client, config: config, localDir: localDir}
}

// UsesLocalDisk reports whether uploads are written under LocalUploadDir.
func (s *StorageService) UsesLocalDisk() bool {
	return s.s3Client == nil
}

// UploadImage stores one image under folder after checking its size,
// extension and file signature.
func (s *StorageService) UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (*UploadResult, error) {
	options, ok := s.GetDefaultUploadOptions(folder)
	if !ok {
		return nil, invalid(i18n.KeyValidationInvalid)
	}

	if options.MaxSize > 0 && header.Size > options.MaxSize {
		return nil, invalid(i18n.KeyFileUploadFailed)
	}

	fileExt := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, allowedType := range options.AllowedTypes {
		if fileExt == allowedType {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, invalid(i18n.KeyFileUploadFailed)
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if !isValidImageType(fileBytes) {
		return nil, invalid(i18n.KeyFileUploadFailed)
	}

	key := s.generateFileName(header.Filename, options.Folder)
	contentType := header.Header.Get("Content-Type")

	if s.s3Client != nil {
		return s.uploadToS3(ctx, fileBytes, key, contentType, options.IsPublic)
	}
	return s.uploadToLocal(fileBytes, key, contentType)
}

func (s *StorageService) uploadToS3(ctx context.Context, fileBytes []byte, key, contentType string, isPublic bool) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	}

	if isPublic {
		params.ACL = aws.String("public-read")
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	target := filepath.Join(s.localDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(target, fileBytes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}

	logrus.WithField("key", key).Debug("Stored upload on local disk")

	return &UploadResult{
		URL:      fmt.Sprintf("http://localhost:%s/uploads/%s", s.config.Server.Port, key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) GetDefaultUploadOptions(folder string) (UploadOptions, bool) {
	switch folder {
	case "products":
		return UploadOptions{
			Folder:       "products",
			MaxSize:      5 * 1024 * 1024, // 5MB
			AllowedTypes: []string{".jpg", ".jpeg", ".png", ".gif"},
			IsPublic:     true,
		}, true
	case "advertisements":
		return UploadOptions{
			Folder:       "advertisements",
			MaxSize:      5 * 1024 * 1024, // 5MB
			AllowedTypes: []string{".jpg", ".jpeg", ".png", ".gif"},
			IsPublic:     true,
		}, true
	default:
		return UploadOptions{}, false
	}
}

func (s *StorageService) generateFileName(originalName, folder string) string {
	id := uuid.New()
	ext := strings.ToLower(filepath.Ext(originalName))

	timestamp := time.Now().Format("20060102")
	filename := fmt.Sprintf("%s_%s%s", timestamp, id.String()[:8], ext)

	if folder != "" {
		return fmt.Sprintf("%s/%s", folder, filename)
	}

	return filename
}

func (s *StorageService) getS3URL(key string) string {
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

	return false
}
