package video

import "errors"

// storage-level sentinels, mapped from the object store's error codes.
var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")
)

// pipeline-level sentinels.
var (
	// ErrQuotaExceeded is returned at admission when a non-premium account is
	// at its upload limit for the declared kind. User-facing, recoverable.
	ErrQuotaExceeded = errors.New("upload quota exceeded")
	// ErrStorageUnavailable is returned at admission when the staging
	// filesystem is not writable. Operator-facing, fatal to the request.
	ErrStorageUnavailable = errors.New("staging storage unavailable")

	// The three background-task failures below all collapse into the
	// persisted failed state; they never reach a caller.
	ErrSubmissionFailed = errors.New("transcoder submission failed")
	ErrRemoteProcessing = errors.New("remote processing error")
	ErrPollingTimedOut  = errors.New("transcoding polling timed out")

	ErrVideoNotFound = errors.New("video not found")
	ErrNotOwner      = errors.New("account does not own this video")
	// ErrNotRetryable is returned when a manual retry targets a video that is
	// not in the failed state.
	ErrNotRetryable = errors.New("video is not in a retryable state")
)
