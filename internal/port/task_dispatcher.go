package port

import "context"

// TaskDispatcher enqueues the detached background task that drives a video
// through transcoding. The admitting request never blocks on it.
type TaskDispatcher interface {
	EnqueueProcessVideo(ctx context.Context, videoID int64) error
}
