package port

import "context"

// DurationProber reads the media duration in seconds from a staged file.
// Probing failure is never fatal to the pipeline.
type DurationProber interface {
	ProbeDuration(ctx context.Context, path string) (int, error)
}
