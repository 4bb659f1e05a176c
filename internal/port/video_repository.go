package port

import (
	"context"
	"time"

	"github.com/creatorly/videos-ms-go/internal/model"
)

// VideoFilter narrows listing queries. The stale-content rule is applied by
// the repository regardless of the filter.
type VideoFilter struct {
	Kind   model.VideoKind
	Status model.VideoStatus
}

// ApprovedVideo carries everything the finaliser persists when an upload
// reaches its terminal approved state.
type ApprovedVideo struct {
	ID           int64
	VideoURL     string
	URL480p      *string
	URL720p      *string
	URL1080p     *string
	URL2K        *string
	URL4K        *string
	ThumbnailURL string // empty means keep the stored one
	Duration     int
}

// VideoRepository defines persistence operations for videos.
type VideoRepository interface {
	// AdmitVideo reserves one quota slot for the owner and creates the
	// pending video row inside a single transaction. It returns
	// ErrQuotaExceeded when a non-premium owner is at the limit for the
	// video's kind.
	AdmitVideo(ctx context.Context, video *model.Video, limits model.QuotaLimits) error
	// ReadmitVideo is AdmitVideo for a manual retry: it re-reserves quota and
	// resets the existing row to pending with a fresh processing key,
	// clearing failed_at.
	ReadmitVideo(ctx context.Context, video *model.Video, limits model.QuotaLimits) error

	GetByID(ctx context.Context, id int64) (*model.Video, error)
	Delete(ctx context.Context, id int64) error

	// Approve atomically records the finalised URLs, duration and the
	// approved status, clearing failed_at.
	Approve(ctx context.Context, approved ApprovedVideo) error
	// MarkFailed transitions pending→failed and stamps failed_at. It reports
	// whether this call performed the transition, so rollback stays
	// idempotent.
	MarkFailed(ctx context.Context, id int64, failedAt time.Time) (bool, error)

	// ListVisible returns videos matching the filter, excluding failed
	// records whose failed_at is older than staleBefore.
	ListVisible(ctx context.Context, filter VideoFilter, staleBefore time.Time) ([]*model.Video, error)
	// ListPendingCreatedBefore returns ids of videos stuck in pending since
	// before the cutoff, for the reconciliation sweep.
	ListPendingCreatedBefore(ctx context.Context, before time.Time) ([]int64, error)
}

// AccountRepository defines the quota-ledger side of persistence.
type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Account, error)
	// ReleaseQuota decrements the counter for the given kind, floored at
	// zero. Best-effort compensation; never returns a negative counter.
	ReleaseQuota(ctx context.Context, accountID int64, kind model.VideoKind) error
}
