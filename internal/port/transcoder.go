package port

import "context"

// TranscodeState is the remote task state as reported by the transcoding
// service. StateNotFound is a valid transient answer: the remote side
// registers tasks asynchronously.
type TranscodeState string

const (
	StatePending   TranscodeState = "pending"
	StateCompleted TranscodeState = "completed"
	StateError     TranscodeState = "error"
	StateNotFound  TranscodeState = "not_found"
)

type TranscodeStatus struct {
	State    TranscodeState `json:"status"`
	Message  string         `json:"message,omitempty"`
	Progress int            `json:"progress,omitempty"`
}

type SubmitInput struct {
	// StagedPath is handed to the remote service as its video identifier.
	// It is a correlation token round-tripped opaquely, nothing more.
	StagedPath    string
	TargetFormat  string
	SkipThumbnail bool
	TaskID        string
}

// TranscodeClient is a pure boundary wrapper around the remote transcoding
// service. It performs no retries; retry policy lives in the orchestrator.
type TranscodeClient interface {
	Submit(ctx context.Context, in SubmitInput) error
	Poll(ctx context.Context, taskID string) (TranscodeStatus, error)
}
