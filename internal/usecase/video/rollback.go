package video

import (
	"context"
	"time"

	"github.com/creatorly/videos-ms-go/internal/logger"
	"github.com/creatorly/videos-ms-go/internal/model"
	"github.com/creatorly/videos-ms-go/internal/port"
)

// undoAdmission undoes an admission that cannot converge: mark the record
// failed, give the quota slot back, drop the staged files. The three actions
// are independent so a failure of one never blocks the others. Quota release
// is keyed to the pending→failed transition, which makes a double rollback
// harmless.
func undoAdmission(ctx context.Context, repo port.VideoRepository, accounts port.AccountRepository, stager port.Stager, video *model.Video) {
	transitioned, err := repo.MarkFailed(ctx, video.ID, time.Now().UTC())
	if err != nil {
		logger.Errorf(ctx, "could not mark video #%d failed: %v", video.ID, err)
	}

	if transitioned {
		if err := accounts.ReleaseQuota(ctx, video.OwnerID, video.Kind); err != nil {
			logger.Errorf(ctx, "could not release quota for account #%d: %v", video.OwnerID, err)
		}
	}

	if err := stager.Remove(video.ProcessingKey); err != nil {
		logger.Warnf(ctx, "could not clean up staging dir %q: %v", video.ProcessingKey, err)
	}
}

func (s *videoProcessorSrv) rollback(ctx context.Context, video *model.Video) {
	undoAdmission(ctx, s.repo, s.accounts, s.stager, video)
}
