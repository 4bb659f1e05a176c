package port

import (
	"context"
	"io"
)

// StagedUpload describes a raw upload persisted to the staging area.
type StagedUpload struct {
	// Key is the staging directory basename, used as the processing key.
	Key      string
	Dir      string
	FilePath string
}

// Stager owns the transient staging area. Each staged upload lives in its own
// uniquely named directory, exclusively owned by one background task until
// that task removes it.
type Stager interface {
	Stage(ctx context.Context, filename string, r io.Reader) (StagedUpload, error)
	// FilePath rebuilds the staged file path for a key and original filename.
	FilePath(key, filename string) string
	// Exists reports whether the staging directory for key is still present.
	Exists(key string) bool
	// Remove deletes the whole staging directory for key. Idempotent.
	Remove(key string) error
}
