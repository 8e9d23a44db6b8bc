// Package hash provides the CRC32-Castagnoli checksum shared by the
// persisted sequence format and the S3 upload path.
//
//	checksum := hash.CRC32C(payload)
//
// The standard library's crc32 uses SSE4.2 and the ARM CRC extension
// when present.
package hash
