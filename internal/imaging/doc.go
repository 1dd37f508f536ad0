// Package imaging is the image engine adapter for the generation pipeline.
//
// It wraps decode, encode and file enumeration behind a small surface so the
// compositors and the batch driver never touch codecs or the filesystem
// directly. All operations work with standard Go image.Image values using a
// coordinate system where (0,0) is the top-left corner, X increases
// rightward, and Y increases downward.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Save and ListBases are stateless
// and may be called concurrently as long as callers write distinct paths.
//
// # Error Handling
//
// Functions return errors for file I/O failures and undecodable or
// unencodable images. A missing base directory is not an error; it yields an
// empty enumeration.
package imaging
