package video

import (
	"time"

	"golang.org/x/net/context"

	"github.com/creatorly/videos-ms-go/internal/model"
	"github.com/creatorly/videos-ms-go/internal/port"
)

type videoListerSrv struct {
	repo port.VideoRepository
}

// compile-time check: *videoListerSrv must satisfy port.VideoLister
var _ port.VideoLister = (*videoListerSrv)(nil)

func NewVideoLister(repo port.VideoRepository) port.VideoLister {
	return &videoListerSrv{repo}
}

// ListVideos returns the filtered listing with stale failures hidden: a
// failed video older than the grace window never reaches a feed.
func (s *videoListerSrv) ListVideos(ctx context.Context, in port.ListVideosInput) ([]*model.Video, error) {
	cutoff := time.Now().UTC().Add(-FailedGraceWindow)
	return s.repo.ListVisible(ctx, port.VideoFilter{Kind: in.Kind, Status: in.Status}, cutoff)
}
