package video

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/creatorly/videos-ms-go/internal/logger"
	"github.com/creatorly/videos-ms-go/internal/model"
	"github.com/creatorly/videos-ms-go/internal/port"
)

type uploadRetrierSrv struct {
	repo     port.VideoRepository
	accounts port.AccountRepository
	stager   port.Stager
	tasks    port.TaskDispatcher
}

// compile-time check: *uploadRetrierSrv must satisfy port.UploadRetrier
var _ port.UploadRetrier = (*uploadRetrierSrv)(nil)

func NewUploadRetrier(repo port.VideoRepository, accounts port.AccountRepository, stager port.Stager, tasks port.TaskDispatcher) port.UploadRetrier {
	return &uploadRetrierSrv{repo, accounts, stager, tasks}
}

// RetryUpload re-runs the pipeline for a failed video the caller owns. The
// row keeps its identity but gets a fresh processing key and a fresh quota
// reservation, exactly as a first admission would.
func (s *uploadRetrierSrv) RetryUpload(ctx context.Context, in port.RetryUploadInput) (port.AdmitUploadOutput, error) {
	video, err := s.repo.GetByID(ctx, in.VideoID)
	if err != nil {
		return port.AdmitUploadOutput{}, err
	}
	if video.OwnerID != in.AccountID {
		return port.AdmitUploadOutput{}, ErrNotOwner
	}
	if video.Status != model.VideoStatusFailed {
		return port.AdmitUploadOutput{}, fmt.Errorf("%w: video #%d is %s", ErrNotRetryable, video.ID, video.Status)
	}

	staged, err := s.stager.Stage(ctx, in.Filename, in.File)
	if err != nil {
		return port.AdmitUploadOutput{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	video.ProcessingKey = staged.Key
	video.OriginalFilename = filepath.Base(staged.FilePath)

	if err := s.repo.ReadmitVideo(ctx, video, DefaultQuotaLimits); err != nil {
		if rmErr := s.stager.Remove(staged.Key); rmErr != nil {
			logger.Warnf(ctx, "could not clean up staging dir %q: %v", staged.Key, rmErr)
		}
		return port.AdmitUploadOutput{}, err
	}

	if err := s.tasks.EnqueueProcessVideo(ctx, video.ID); err != nil {
		undoAdmission(ctx, s.repo, s.accounts, s.stager, video)
		return port.AdmitUploadOutput{}, fmt.Errorf("could not dispatch processing task for video #%d: %w", video.ID, err)
	}

	return port.AdmitUploadOutput{ID: video.ID, ProcessingKey: video.ProcessingKey}, nil
}
