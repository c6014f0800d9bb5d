package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"devserve/core/storage"

	"github.com/minio/minio-go/v7"
)

// BucketScheme marks a root that lives in object storage.
const BucketScheme = "s3://"

// ErrNoRoots is returned when no content root is configured.
var ErrNoRoots = errors.New("no content roots configured")

// Root is one entry of the ordered search list.
type Root interface {
	// Locate maps a decoded request path onto the location this root reads.
	Locate(urlPath string) string
	// Read loads the bytes stored at a location returned by Locate.
	// Missing content is reported with an error matching fs.ErrNotExist.
	Read(ctx context.Context, location string) ([]byte, error)
	// String describes the root for logs.
	String() string
}

// DirRoot serves files below a local directory.
type DirRoot struct {
	dir string
}

// NewDirRoot creates a root for dir, made absolute against the working
// directory.
func NewDirRoot(dir string) (*DirRoot, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", dir, err)
	}
	return &DirRoot{dir: abs}, nil
}

// Locate joins the request path below the directory. The join normalizes ".."
// segments; no further sandboxing is applied.
func (r *DirRoot) Locate(urlPath string) string {
	return filepath.Join(r.dir, filepath.FromSlash("."+urlPath))
}

func (r *DirRoot) Read(_ context.Context, location string) ([]byte, error) {
	return os.ReadFile(location)
}

func (r *DirRoot) String() string {
	return r.dir
}

// Dir returns the absolute directory.
func (r *DirRoot) Dir() string {
	return r.dir
}

// BucketRoot serves objects below a prefix of a storage bucket.
type BucketRoot struct {
	client storage.Client
	bucket string
	prefix string
}

// NewBucketRoot parses an s3://bucket/prefix location.
func NewBucketRoot(client storage.Client, location string) (*BucketRoot, error) {
	rest := strings.TrimPrefix(location, BucketScheme)
	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return nil, fmt.Errorf("invalid bucket root %q: missing bucket name", location)
	}
	if client == nil {
		return nil, fmt.Errorf("bucket root %q requires a storage client", location)
	}
	return &BucketRoot{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

// Bucket returns the bucket name.
func (r *BucketRoot) Bucket() string {
	return r.bucket
}

func (r *BucketRoot) Locate(urlPath string) string {
	key := strings.TrimPrefix(path.Join("/", r.prefix, "."+urlPath), "/")
	return BucketScheme + r.bucket + "/" + key
}

func (r *BucketRoot) Read(ctx context.Context, location string) ([]byte, error) {
	key := strings.TrimPrefix(location, BucketScheme+r.bucket+"/")

	obj, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, bucketError(location, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, bucketError(location, err)
	}
	return data, nil
}

func (r *BucketRoot) String() string {
	return BucketScheme + path.Join(r.bucket, r.prefix)
}

func bucketError(location string, err error) error {
	if storage.IsNotFound(err) {
		err = fs.ErrNotExist
	}
	return &fs.PathError{Op: "get", Path: location, Err: err}
}

// ParseRoots builds the ordered root list. client may be nil when no entry
// uses the s3:// scheme.
func ParseRoots(entries []string, client storage.Client) ([]Root, error) {
	roots := make([]Root, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		var (
			root Root
			err  error
		)
		if strings.HasPrefix(entry, BucketScheme) {
			root, err = NewBucketRoot(client, entry)
		} else {
			root, err = NewDirRoot(entry)
		}
		if err != nil {
			return nil, err
		}
		roots = append(roots, root)
	}

	if len(roots) == 0 {
		return nil, ErrNoRoots
	}
	return roots, nil
}

// NeedsStorage reports whether any root entry points at object storage.
func NeedsStorage(entries []string) bool {
	for _, entry := range entries {
		if strings.HasPrefix(strings.TrimSpace(entry), BucketScheme) {
			return true
		}
	}
	return false
}
