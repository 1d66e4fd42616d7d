// Package cloudwriter uploads finished artifacts (cached series files,
// feature matrices) to object storage. Writers buffer locally and upload on
// Close, since parquet writing needs a seekable-ish target.
package cloudwriter

import "context"

type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

type CloudWriterFactory interface {
	NewWriter(ctx context.Context, bucket, objectPath string) (CloudWriter, error)
}
