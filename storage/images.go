// Package storage persists listing images supplied either as multipart
// attachments or inline data-URIs. Files land in the local uploads
// directory by default; when Cloudflare R2 credentials are configured they
// are written to the bucket instead.
package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/nest-quest/api-go/config"
)

const maxImageSize = 5 * 1024 * 1024 // 5MB per file

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var dataURIPattern = regexp.MustCompile(`^data:image/([a-zA-Z+]+);base64,(.+)$`)

// ImageStore persists one image blob and returns its public URL.
type ImageStore interface {
	Save(data []byte, filename, contentType string) (string, error)
}

// NewImageStore selects the R2 backend when credentials are configured and
// falls back to the local uploads directory otherwise.
func NewImageStore() ImageStore {
	r2Config := config.GetR2Config()
	if r2Config.Enabled() {
		client := s3.New(s3.Options{
			BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
			Credentials: credentials.NewStaticCredentialsProvider(
				r2Config.AccessKeyID,
				r2Config.SecretAccessKey,
				"",
			),
			Region: r2Config.Region,
		})
		return &R2ImageStore{Client: client, Config: r2Config}
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &LocalImageStore{Dir: "uploads", BaseURL: baseURL}
}

type LocalImageStore struct {
	Dir     string
	BaseURL string
}

func (l *LocalImageStore) Save(data []byte, filename, contentType string) (string, error) {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(l.Dir, filename), data, 0o644); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/uploads/%s", l.BaseURL, filename), nil
}

type R2ImageStore struct {
	Client *s3.Client
	Config *config.R2Config
}

func (r *R2ImageStore) Save(data []byte, filename, contentType string) (string, error) {
	key := "uploads/" + filename

	_, err := r.Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(r.Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", r.Config.PublicURL, key), nil
}

// GenerateImageName builds a collision-free filename for one stored image.
func GenerateImageName(prefix, ext string) string {
	return fmt.Sprintf("%s-%d-%s%s", prefix, time.Now().Unix(), uuid.New().String(), ext)
}

// SaveDataURI decodes a base64 data-URI image and stores it. Malformed
// input returns an error; the caller decides whether the image was
// mandatory.
func SaveDataURI(store ImageStore, dataURI, prefix string) (string, error) {
	matches := dataURIPattern.FindStringSubmatch(dataURI)
	if matches == nil {
		return "", fmt.Errorf("invalid base64 image format")
	}

	ext := matches[1]
	if ext == "jpeg" {
		ext = "jpg"
	}
	contentType := "image/" + matches[1]
	if _, ok := allowedImageTypes[contentType]; !ok {
		return "", fmt.Errorf("only image files (JPEG, PNG, WebP) are allowed")
	}

	data, err := base64.StdEncoding.DecodeString(matches[2])
	if err != nil {
		return "", fmt.Errorf("invalid base64 image data: %v", err)
	}
	if len(data) > maxImageSize {
		return "", fmt.Errorf("file size too large, maximum 5MB per file")
	}

	return store.Save(data, GenerateImageName(prefix, "."+ext), contentType)
}

// SaveMultipart validates and stores one multipart image attachment.
func SaveMultipart(store ImageStore, header *multipart.FileHeader, prefix string) (string, error) {
	if header.Size > maxImageSize {
		return "", fmt.Errorf("file size too large, maximum 5MB per file")
	}

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", fmt.Errorf("only image files (JPEG, PNG, WebP) are allowed")
	}
	if headerExt := strings.ToLower(filepath.Ext(header.Filename)); headerExt != "" {
		ext = headerExt
	}

	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	return store.Save(data, GenerateImageName(prefix, ext), contentType)
}
