package video

import (
	"time"

	"github.com/creatorly/videos-ms-go/internal/model"
)

const (
	// Per-account upload limits for non-premium accounts.
	HomeQuotaLimit  = 20
	FlashQuotaLimit = 50

	// Poll policy for the background orchestrator: a fixed interval and a
	// bounded attempt count (~10 minutes ceiling) turn an unresponsive
	// transcoder into a deterministic failure instead of an indefinite hang.
	DefaultPollInterval    = 2 * time.Second
	DefaultMaxPollAttempts = 300

	// FailedGraceWindow keeps failed records visible after failed_at, for
	// diagnosis or a manual retry, before listings hide them.
	FailedGraceWindow = 24 * time.Hour

	// StatusCacheTTL matches the orchestrator poll interval; a status answer
	// can never be staler than one remote poll.
	StatusCacheTTL = 2 * time.Second

	// PendingRequeueAfter is how long a video may sit pending before the
	// reconciliation sweep considers its task lost.
	PendingRequeueAfter = time.Hour

	// PlaceholderThumbnailURL is set at creation and replaced during
	// finalisation unless the client supplied its own thumbnail.
	PlaceholderThumbnailURL = "https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe?auto=format&fit=crop&w=800&q=60"
)

var DefaultQuotaLimits = model.QuotaLimits{Home: HomeQuotaLimit, Flash: FlashQuotaLimit}
