package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"case_cockpit_go/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// StorageProvider is the object store behind the case database: blobs for
// uploaded case files (the database itself keeps only metadata) and the
// snapshot object the sync path reads and writes.
type StorageProvider interface {
	SnapshotStore

	PutBlob(ctx context.Context, id string, reader io.Reader, contentType string, size int64) error
	GetBlob(ctx context.Context, id string) (io.ReadCloser, string, error)
	DeleteBlob(ctx context.Context, id string) error
	IsConfigured() bool
}

// Storage is the global storage instance
var Storage StorageProvider

// InitializeStorage sets up the storage provider based on configuration
func InitializeStorage(cfg *config.Config) {
	if cfg.R2AccountID != "" && cfg.R2AccessKeyID != "" && cfg.R2SecretAccessKey != "" && cfg.R2BucketName != "" {
		r2, err := NewR2Storage(cfg)
		if err != nil {
			log.Printf("[WARNING] Failed to initialize R2 storage: %v. Falling back to local storage.", err)
			Storage = NewLocalStorage(cfg.UploadDir)
			log.Println("Storage connection established (Local filesystem - fallback)")
			return
		}

		// Test R2 connection (HeadBucket)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_, err = r2.client.HeadBucket(ctx, &s3.HeadBucketInput{
			Bucket: &cfg.R2BucketName,
		})
		if err != nil {
			log.Printf("[WARNING] R2 bucket connection test failed: %v. Falling back to local storage.", err)
			Storage = NewLocalStorage(cfg.UploadDir)
			log.Println("Storage connection established (Local filesystem - fallback)")
			return
		}

		Storage = r2
		log.Printf("Storage connection established (Cloudflare R2 - bucket: %s)", cfg.R2BucketName)
	} else {
		Storage = NewLocalStorage(cfg.UploadDir)
		log.Printf("Storage connection established (Local filesystem - path: %s)", cfg.UploadDir)
	}
}

func blobKey(id string) string {
	return "files/" + id
}

func snapshotKey(name string) string {
	return "backups/" + name
}

// R2Storage implements StorageProvider for Cloudflare R2
type R2Storage struct {
	client *s3.Client
	bucket string
}

// NewR2Storage creates a new R2 storage provider
func NewR2Storage(cfg *config.Config) (*R2Storage, error) {
	// R2 endpoint format: https://<account_id>.r2.cloudflarestorage.com
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)

	creds := credentials.NewStaticCredentialsProvider(
		cfg.R2AccessKeyID,
		cfg.R2SecretAccessKey,
		"",
	)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRegion("auto"), // R2 uses "auto" region
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &R2Storage{
		client: client,
		bucket: cfg.R2BucketName,
	}, nil
}

// IsConfigured returns true if R2 is properly configured
func (r *R2Storage) IsConfigured() bool {
	return r.client != nil && r.bucket != ""
}

// PutBlob uploads file content under the given blob id
func (r *R2Storage) PutBlob(ctx context.Context, id string, reader io.Reader, contentType string, size int64) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	input := &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(blobKey(id)),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	}
	if _, err := r.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload to R2: %w", err)
	}
	return nil
}

// GetBlob retrieves file content by blob id
func (r *R2Storage) GetBlob(ctx context.Context, id string) (io.ReadCloser, string, error) {
	result, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(blobKey(id)),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get object from R2: %w", err)
	}

	contentType := "application/octet-stream"
	if result.ContentType != nil {
		contentType = *result.ContentType
	}
	return result.Body, contentType, nil
}

// DeleteBlob removes a blob from R2
func (r *R2Storage) DeleteBlob(ctx context.Context, id string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(blobKey(id)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from R2: %w", err)
	}
	return nil
}

// ListSnapshotFile checks whether the named snapshot object exists and
// returns its key as the reference, or "" when absent
func (r *R2Storage) ListSnapshotFile(ctx context.Context, name string) (string, error) {
	key := snapshotKey(name)
	_, err := r.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to probe snapshot object: %w", err)
	}
	return key, nil
}

// ReadSnapshotFile fetches the snapshot content by reference
func (r *R2Storage) ReadSnapshotFile(ctx context.Context, ref string) (string, error) {
	result, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read snapshot object: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read snapshot body: %w", err)
	}
	return string(data), nil
}

// WriteSnapshotFile replaces the named snapshot object entirely
func (r *R2Storage) WriteSnapshotFile(ctx context.Context, name, content, existingRef string) (string, error) {
	key := existingRef
	if key == "" {
		key = snapshotKey(name)
	}
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(content),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to write snapshot object: %w", err)
	}
	return key, nil
}

// LocalStorage implements StorageProvider on the local filesystem
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage creates a new local storage provider
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

// IsConfigured returns true (local storage is always available)
func (l *LocalStorage) IsConfigured() bool {
	return true
}

func (l *LocalStorage) writeFile(key string, reader io.Reader) error {
	fullPath := filepath.Join(l.baseDir, key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	dst, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, reader); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

// PutBlob saves file content under the given blob id
func (l *LocalStorage) PutBlob(ctx context.Context, id string, reader io.Reader, contentType string, size int64) error {
	return l.writeFile(blobKey(id), reader)
}

// GetBlob retrieves file content by blob id. The content type is guessed
// from nothing here; callers keep the real type in the file metadata.
func (l *LocalStorage) GetBlob(ctx context.Context, id string) (io.ReadCloser, string, error) {
	file, err := os.Open(filepath.Join(l.baseDir, blobKey(id)))
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	return file, "application/octet-stream", nil
}

// DeleteBlob removes a blob from the local filesystem
func (l *LocalStorage) DeleteBlob(ctx context.Context, id string) error {
	if err := os.Remove(filepath.Join(l.baseDir, blobKey(id))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// ListSnapshotFile returns the snapshot path when the file exists, "" otherwise
func (l *LocalStorage) ListSnapshotFile(ctx context.Context, name string) (string, error) {
	key := snapshotKey(name)
	if _, err := os.Stat(filepath.Join(l.baseDir, key)); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to probe snapshot file: %w", err)
	}
	return key, nil
}

// ReadSnapshotFile reads the snapshot content by reference
func (l *LocalStorage) ReadSnapshotFile(ctx context.Context, ref string) (string, error) {
	data, err := os.ReadFile(filepath.Join(l.baseDir, ref))
	if err != nil {
		return "", fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return string(data), nil
}

// WriteSnapshotFile replaces the named snapshot file entirely
func (l *LocalStorage) WriteSnapshotFile(ctx context.Context, name, content, existingRef string) (string, error) {
	key := existingRef
	if key == "" {
		key = snapshotKey(name)
	}
	if err := l.writeFile(key, strings.NewReader(content)); err != nil {
		return "", err
	}
	return key, nil
}
