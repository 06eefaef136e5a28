package service

import (
	"context"
	"io"
)

// FileHost stores public files such as avatars.
type FileHost interface {
	// Upload stores r under identifier, replacing any previous object,
	// and returns a public URL that changes with every upload.
	Upload(ctx context.Context, r io.Reader, size int64, contentType, identifier string) (string, error)
}
