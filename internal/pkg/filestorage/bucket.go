package filestorage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/selim/courseshelf/internal/pkg/apperrors"
	"github.com/selim/courseshelf/internal/pkg/logger"
)

// BucketClient talks to an external object storage service over its HTTP
// API. Objects live in a single configured bucket and are keyed as
// <folder>/<generated name>.
type BucketClient struct {
	endpoint string // Base URL of the storage service, no trailing slash
	bucket   string
	key      string // Service key sent as a bearer token
	client   *http.Client
}

// BucketConfig holds the settings for a BucketClient.
type BucketConfig struct {
	Endpoint   string
	Bucket     string
	ServiceKey string
	Timeout    time.Duration
}

// NewBucketClient creates a new BucketClient.
func NewBucketClient(cfg BucketConfig) (*BucketClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &BucketClient{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		bucket:   cfg.Bucket,
		key:      cfg.ServiceKey,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// Store uploads content under a generated collision-resistant name inside
// folder. The caller-supplied name is never reused; only its extension is
// kept.
func (bc *BucketClient) Store(ctx context.Context, folder, originalName, contentType string, content io.Reader) (*StoredObject, error) {
	ext := filepath.Ext(originalName)
	objectName := uuid.New().String() + ext

	path := objectName
	if folder != "" {
		path = folder + "/" + objectName
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, bc.objectURL(path), content)
	if err != nil {
		return nil, apperrors.NewStorageWriteError(err, "failed to build storage request")
	}
	bc.authorize(req)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Cache-Control", "max-age=3600")

	resp, err := bc.client.Do(req)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Blob store upload request failed")
		return nil, apperrors.NewStorageWriteError(err, "failed to upload file to storage")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := bc.responseError(resp)
		logger.Error().Err(err).Str("path", path).Int("status", resp.StatusCode).Msg("Blob store rejected upload")
		return nil, apperrors.NewStorageWriteError(err, "storage rejected the upload")
	}

	logger.Info().Str("filename", originalName).Str("saved_as", objectName).Str("path", path).Msg("File stored")
	return &StoredObject{
		Path:      path,
		PublicURL: bc.PublicURL(path),
	}, nil
}

// Remove deletes a stored blob by its path. Callers treat failures as
// non-fatal; the error is returned for logging only.
func (bc *BucketClient) Remove(ctx context.Context, path string) error {
	if path == "" {
		return nil // Nothing to remove
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, bc.objectURL(path), nil)
	if err != nil {
		return apperrors.NewCustomError(apperrors.ErrStorageRemove, err.Error())
	}
	bc.authorize(req)

	resp, err := bc.client.Do(req)
	if err != nil {
		return apperrors.NewCustomError(apperrors.ErrStorageRemove, err.Error())
	}
	defer resp.Body.Close()

	// A missing object counts as removed (idempotent delete).
	if resp.StatusCode == http.StatusNotFound {
		logger.Warn().Str("path", path).Msg("Blob to remove does not exist")
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.NewCustomError(apperrors.ErrStorageRemove, bc.responseError(resp).Error())
	}

	return nil
}

// PublicURL derives the stable public address for a stored path. It is a
// pure function of the configured endpoint, bucket and path.
func (bc *BucketClient) PublicURL(path string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", bc.endpoint, bc.bucket, path)
}

func (bc *BucketClient) objectURL(path string) string {
	return fmt.Sprintf("%s/object/%s/%s", bc.endpoint, bc.bucket, path)
}

func (bc *BucketClient) authorize(req *http.Request) {
	if bc.key != "" {
		req.Header.Set("Authorization", "Bearer "+bc.key)
	}
}

func (bc *BucketClient) responseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = resp.Status
	}
	return fmt.Errorf("storage responded %d: %s", resp.StatusCode, msg)
}
