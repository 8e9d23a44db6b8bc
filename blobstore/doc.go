// Package blobstore provides the storage abstraction persisted sequences
// are written to.
//
// Store reads and writes whole, immutable blobs by name. Implementations
// must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and ephemeral use
//   - LocalStore: one file per blob under a root directory
//   - minio.Store: MinIO and other S3-compatible services
//   - s3.Store: Amazon S3 with multipart uploads
package blobstore
