// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("genomes/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
// Blobs smaller than the multipart part size are written with a single
// PutObject carrying a CRC32C checksum; larger blobs go through the
// multipart uploader. Listing follows continuation tokens.
//
// Several writers sharing one prefix should use NewWithCommits, which
// versions the catalog through DynamoDB conditional writes:
//
//	store, err := s3.NewWithCommits(ctx, "my-bucket", "seqpack-commits",
//	    s3.WithPrefix("genomes/"),
//	)
package s3
