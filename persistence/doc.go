// Package persistence serializes packed sequences and keeps named
// sequences in a blobstore.
//
// # Format
//
// Every encoded sequence is a 24-byte little-endian header followed by the
// packed buffer, optionally compressed:
//
//	offset size field
//	0      4    magic "SQPK"
//	4      1    format version
//	5      1    alphabet kind
//	6      1    compression (0 none, 1 lz4, 2 zstd)
//	7      1    reserved, zero
//	8      8    symbol count
//	16     4    stored payload length
//	20     4    CRC32C of header bytes [0,20) and the stored payload
//
// The header records the compression actually applied: a payload that
// does not shrink is stored uncompressed.
//
// # Store
//
// Store keeps one blob per sequence under "seqs/<name>.sqpk" plus a JSON
// catalog ("catalog.json") describing every saved sequence.
package persistence
