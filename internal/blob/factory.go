package blob

import (
	"context"
	"fmt"
)

// Options selects and configures a blob backend.
type Options struct {
	Driver Driver
	S3     S3Config
}

// Open returns the blob.Store named by opts.Driver (default s3).
func Open(ctx context.Context, opts Options) (Store, error) {
	driver := opts.Driver
	if driver == "" {
		driver = DriverS3
	}
	switch driver {
	case DriverS3:
		return NewS3(ctx, opts.S3)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
