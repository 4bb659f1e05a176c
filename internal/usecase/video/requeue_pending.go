package video

import (
	"context"
	"time"

	"github.com/creatorly/videos-ms-go/internal/logger"
	"github.com/creatorly/videos-ms-go/internal/port"
)

type pendingRequeuerSrv struct {
	repo     port.VideoRepository
	accounts port.AccountRepository
	stager   port.Stager
	tasks    port.TaskDispatcher
}

// compile-time check: *pendingRequeuerSrv must satisfy port.PendingRequeuer
var _ port.PendingRequeuer = (*pendingRequeuerSrv)(nil)

func NewPendingRequeuer(repo port.VideoRepository, accounts port.AccountRepository, stager port.Stager, tasks port.TaskDispatcher) port.PendingRequeuer {
	return &pendingRequeuerSrv{repo, accounts, stager, tasks}
}

// RequeuePending sweeps videos stuck in pending long past any plausible
// processing time. If the staged source still exists the task is re-enqueued;
// otherwise nothing can ever converge and the admission is undone.
func (s *pendingRequeuerSrv) RequeuePending(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-PendingRequeueAfter)
	ids, err := s.repo.ListPendingCreatedBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		logger.Info(ctx, "no stuck pending videos")
		return nil
	}

	logger.Infof(ctx, "found %d stuck pending videos", len(ids))
	for _, id := range ids {
		video, err := s.repo.GetByID(ctx, id)
		if err != nil {
			logger.Errorf(ctx, "could not load video #%d: %v", id, err)
			continue
		}

		if !s.stager.Exists(video.ProcessingKey) {
			logger.Warnf(ctx, "staged source for video #%d is gone, rolling back", video.ID)
			undoAdmission(ctx, s.repo, s.accounts, s.stager, video)
			continue
		}

		if err := s.tasks.EnqueueProcessVideo(ctx, video.ID); err != nil {
			logger.Errorf(ctx, "could not re-enqueue video #%d: %v", video.ID, err)
			continue
		}
		logger.Infof(ctx, "re-enqueued video #%d", video.ID)
	}
	return nil
}
