// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so that content roots of the form
// s3://bucket/prefix can be searched alongside local directories. This
// abstraction supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface only carries the operations a read-only root needs,
// which keeps it easy to mock (see core/storage/mocks).
//
//   - BucketExists: Verifies access to a root's bucket at startup.
//   - GetObject: Retrieves content as a stream.
//
// IsNotFound maps "NoSuchKey"-style responses so callers can treat them like
// a missing file.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "assets")
package storage
