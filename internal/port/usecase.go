package port

import (
	"context"
	"io"

	"github.com/creatorly/videos-ms-go/internal/model"
)

// ThumbnailUpload is an optional client-supplied thumbnail accompanying an
// upload. A client-supplied thumbnail is never overwritten by the pipeline.
type ThumbnailUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadAdmitter runs the synchronous admission path: quota reservation,
// staging, record creation and background-task dispatch.
type UploadAdmitter interface {
	AdmitUpload(ctx context.Context, in AdmitUploadInput) (AdmitUploadOutput, error)
}
type AdmitUploadInput struct {
	AccountID int64
	Kind      model.VideoKind
	Title     string
	Filename  string
	File      io.Reader
	Thumbnail *ThumbnailUpload
}
type AdmitUploadOutput struct {
	ID            int64  `json:"id"`
	ProcessingKey string `json:"processing_key"`
}

// VideoProcessor is the background orchestrator driving one admitted upload
// to a terminal state. It never returns transcoding failures: those are
// absorbed into the persisted failed state plus rollback side effects.
type VideoProcessor interface {
	ProcessVideo(ctx context.Context, videoID int64) error
}

// ProcessingStatusGetter proxies the remote task status for a processing key.
type ProcessingStatusGetter interface {
	GetProcessingStatus(ctx context.Context, processingKey string) ProcessingStatusOutput
}
type ProcessingStatusOutput struct {
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	Progress int    `json:"progress,omitempty"`
}

// VideoLister returns listings with the stale-content filter applied.
type VideoLister interface {
	ListVideos(ctx context.Context, in ListVideosInput) ([]*model.Video, error)
}
type ListVideosInput struct {
	Kind   model.VideoKind
	Status model.VideoStatus
}

// UploadRetrier re-runs the pipeline for a failed video with a fresh stream.
type UploadRetrier interface {
	RetryUpload(ctx context.Context, in RetryUploadInput) (AdmitUploadOutput, error)
}
type RetryUploadInput struct {
	VideoID   int64
	AccountID int64
	Filename  string
	File      io.Reader
}

// VideoDeleter removes a video row and its durable objects.
type VideoDeleter interface {
	DeleteVideo(ctx context.Context, videoID, accountID int64) error
}

// PendingRequeuer is the reconciliation sweep for orchestrator tasks lost to
// a process crash.
type PendingRequeuer interface {
	RequeuePending(ctx context.Context) error
}
