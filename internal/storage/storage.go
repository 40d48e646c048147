package storage

import (
	"bytes"
	"errors"
	"io"

	"radcon-schedule/internal/config"
	"radcon-schedule/internal/utils"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
)

type Client struct {
	backend         StorageProvider
	bucketCatalog   string
	bucketFavorites string
}

func New(cfg *config.Config) *Client {
	var backend StorageProvider

	if cfg.Storage.Provider == "local" {
		backend = NewLocalProvider(cfg.Storage.LocalStorage)
	} else {
		s3Config := &aws.Config{
			Credentials:      credentials.NewStaticCredentials(cfg.Storage.KeyID, cfg.Storage.AppKey, ""),
			Endpoint:         aws.String(cfg.Storage.Endpoint),
			Region:           aws.String(cfg.Storage.Region),
			S3ForcePathStyle: aws.Bool(true),
		}
		sess := session.Must(session.NewSession(s3Config))
		backend = NewS3Provider(sess)
	}

	return NewWithProvider(backend, cfg.Catalog.Bucket, cfg.Favorites.Bucket)
}

// NewWithProvider wraps an existing provider.
func NewWithProvider(backend StorageProvider, catalogBucket, favoritesBucket string) *Client {
	return &Client{
		backend:         backend,
		bucketCatalog:   catalogBucket,
		bucketFavorites: favoritesBucket,
	}
}

// --- Catalog ---

func (c *Client) DownloadCatalog(key string) (*FileObject, error) {
	return c.backend.Get(c.bucketCatalog, key)
}

func (c *Client) UploadCatalog(key string, body io.ReadSeeker, contentType string) error {
	return c.backend.Put(c.bucketCatalog, key, body, contentType, "no-cache")
}

func (c *Client) ListCatalogs() ([]string, error) {
	return c.backend.List(c.bucketCatalog, "")
}

// --- Favorites ---

// Favorites returns a key/value view of the favorites bucket.
func (c *Client) Favorites() *KV {
	return &KV{backend: c.backend, bucket: c.bucketFavorites}
}

// KV stores each record as one JSON object named <key>.json, with the key
// reduced to a portable object name.
type KV struct {
	backend StorageProvider
	bucket  string
}

func NewKV(backend StorageProvider, bucket string) *KV {
	return &KV{backend: backend, bucket: bucket}
}

func (k *KV) objectKey(key string) string {
	return utils.SafeKey(key, "favorites") + ".json"
}

func (k *KV) Get(key string) ([]byte, bool, error) {
	obj, err := k.backend.Get(k.bucket, k.objectKey(key))
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (k *KV) Put(key string, value []byte) error {
	return k.backend.Put(k.bucket, k.objectKey(key), bytes.NewReader(value), "application/json", "no-store")
}
