package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/mpetrov/teamdrop/internal/config"
)

// MinioProvider maps the folder model onto object keys in a single
// bucket: a folder is a key prefix materialized by a zero-byte marker
// object ending in "/", and a file's provider id is its full object key.
type MinioProvider struct {
	client *minio.Client
	bucket string
	root   string
}

// NewMinioProvider creates a new MinIO-backed provider
func NewMinioProvider(cfg *config.Config) (*MinioProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %v", err)
	}

	provider := &MinioProvider{
		client: client,
		bucket: cfg.MinioBucket,
		root:   normalizePrefix(cfg.MinioRootPrefix),
	}

	if err := provider.ensureBucket(); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %v", err)
	}

	return provider, nil
}

// ensureBucket creates the bucket if it doesn't exist
func (m *MinioProvider) ensureBucket() error {
	ctx := context.Background()

	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("error checking if bucket exists: %v", err)
	}

	if !exists {
		err = m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("error creating bucket: %v", err)
		}
		log.Printf("Created bucket: %s", m.bucket)
	}

	return nil
}

func (m *MinioProvider) FindFolders(ctx context.Context, name string) ([]FileMeta, error) {
	key := m.folderKey(name)

	// Any object under the prefix, marker included, means the folder exists.
	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: key})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %v", object.Err)
		}
		return []FileMeta{{ID: key, Name: name}}, nil
	}

	return nil, nil
}

func (m *MinioProvider) ListFolders(ctx context.Context) ([]FileMeta, error) {
	var metas []FileMeta

	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: m.root})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %v", object.Err)
		}
		// Non-recursive listings surface sub-prefixes as keys ending in "/".
		if strings.HasSuffix(object.Key, "/") {
			metas = append(metas, FileMeta{
				ID:   object.Key,
				Name: path.Base(strings.TrimSuffix(object.Key, "/")),
			})
		}
	}

	return metas, nil
}

func (m *MinioProvider) CreateFolder(ctx context.Context, name string) (FileMeta, error) {
	key := m.folderKey(name)

	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(nil), 0, minio.PutObjectOptions{})
	if err != nil {
		return FileMeta{}, fmt.Errorf("failed to create folder %s: %v", name, err)
	}

	return FileMeta{ID: key, Name: name}, nil
}

func (m *MinioProvider) ListChildren(ctx context.Context, folderID string) ([]FileMeta, error) {
	var metas []FileMeta

	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: folderID})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %v", object.Err)
		}
		// Skip the folder marker and nested prefixes.
		if strings.HasSuffix(object.Key, "/") {
			continue
		}
		metas = append(metas, FileMeta{
			ID:           object.Key,
			Name:         path.Base(object.Key),
			ModifiedTime: object.LastModified.UTC().Format(time.RFC3339),
			Parents:      []string{folderID},
		})
	}

	return metas, nil
}

func (m *MinioProvider) FindFiles(ctx context.Context, folderID, name string) ([]FileMeta, error) {
	key := folderID + name

	info, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat object %s: %v", key, err)
	}

	return []FileMeta{{
		ID:           key,
		Name:         name,
		ModifiedTime: info.LastModified.UTC().Format(time.RFC3339),
		Parents:      []string{folderID},
	}}, nil
}

func (m *MinioProvider) UploadFile(ctx context.Context, folderID, name, contentType string, data []byte) (FileMeta, error) {
	key := folderID + name

	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return FileMeta{}, fmt.Errorf("failed to upload object %s: %v", key, err)
	}
	log.Printf("Successfully saved archive to MinIO: %s (size: %d bytes)", key, len(data))

	return FileMeta{
		ID:           key,
		Name:         name,
		ModifiedTime: time.Now().UTC().Format(time.RFC3339),
		Parents:      []string{folderID},
	}, nil
}

func (m *MinioProvider) DeleteFile(ctx context.Context, fileID string) error {
	err := m.client.RemoveObject(ctx, m.bucket, fileID, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %v", fileID, err)
	}
	log.Printf("Successfully deleted archive from MinIO: %s", fileID)
	return nil
}

func (m *MinioProvider) folderKey(name string) string {
	return m.root + name + "/"
}

// normalizePrefix ensures a non-empty prefix ends with exactly one "/".
func normalizePrefix(prefix string) string {
	if prefix == "" {
		return ""
	}
	return strings.TrimSuffix(prefix, "/") + "/"
}
