package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ObjectStorage stores attachment bytes and resolves them to public URLs.
type ObjectStorage interface {
	// Upload writes body under key in bucket and returns the stored path.
	Upload(ctx context.Context, bucket, key string, body io.Reader) (string, error)
	// PublicURL resolves a stored path to a publicly retrievable URL.
	PublicURL(bucket, storedPath string) string
}

var ErrObjectExists = errors.New("The resource already exists")

// LocalObjectStorage keeps buckets as directories under UPLOAD_PATH. The
// router serves the same root read-only under /files, which is what makes
// the returned URLs public.
type LocalObjectStorage struct {
	root    string
	baseURL string
}

func NewLocalObjectStorage(root, baseURL string) *LocalObjectStorage {
	return &LocalObjectStorage{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// FilesRoute is the URL prefix under which buckets are served.
const FilesRoute = "/files"

func (s *LocalObjectStorage) Upload(ctx context.Context, bucket, key string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cleanKey := path.Clean("/" + key)[1:]
	if cleanKey == "" || cleanKey != key {
		return "", fmt.Errorf("invalid object key %q", key)
	}

	fullPath := filepath.Join(s.root, bucket, filepath.FromSlash(cleanKey))
	if err := os.MkdirAll(filepath.Dir(fullPath), os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create bucket folder: %w", err)
	}

	// Existing objects are never overwritten.
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", ErrObjectExists
		}
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return cleanKey, nil
}

func (s *LocalObjectStorage) PublicURL(bucket, storedPath string) string {
	segments := strings.Split(storedPath, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.baseURL + FilesRoute + "/" + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}

// ProvisionBucket creates the bucket directory and its folders.
func (s *LocalObjectStorage) ProvisionBucket(bucket string, folders []string) error {
	for _, folder := range folders {
		if err := os.MkdirAll(filepath.Join(s.root, bucket, folder), os.ModePerm); err != nil {
			return fmt.Errorf("failed to create %s/%s: %w", bucket, folder, err)
		}
	}
	return nil
}
