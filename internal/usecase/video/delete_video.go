package video

import (
	"context"

	"github.com/creatorly/videos-ms-go/internal/logger"
	"github.com/creatorly/videos-ms-go/internal/model"
	"github.com/creatorly/videos-ms-go/internal/port"
)

type videoDeleterSrv struct {
	repo         port.VideoRepository
	strg         port.Storage
	videosBucket string
	thumbsBucket string
}

// compile-time check: *videoDeleterSrv must satisfy port.VideoDeleter
var _ port.VideoDeleter = (*videoDeleterSrv)(nil)

func NewVideoDeleter(repo port.VideoRepository, strg port.Storage, videosBucket, thumbsBucket string) port.VideoDeleter {
	return &videoDeleterSrv{repo, strg, videosBucket, thumbsBucket}
}

// DeleteVideo removes the row and, best effort, every durable object it
// points at. A leaked object costs storage; a row pointing at deleted
// objects breaks playback, so the row goes last.
func (s *videoDeleterSrv) DeleteVideo(ctx context.Context, videoID, accountID int64) error {
	video, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if video.OwnerID != accountID {
		return ErrNotOwner
	}

	s.removeObjects(ctx, video)

	return s.repo.Delete(ctx, video.ID)
}

func (s *videoDeleterSrv) removeObjects(ctx context.Context, video *model.Video) {
	for _, url := range []*string{video.URL480p, video.URL720p, video.URL1080p, video.URL2K, video.URL4K} {
		if url == nil {
			continue
		}
		s.removeByURL(ctx, s.videosBucket, *url)
	}
	if video.ThumbnailURL != "" && video.ThumbnailURL != PlaceholderThumbnailURL {
		s.removeByURL(ctx, s.thumbsBucket, video.ThumbnailURL)
	}
}

func (s *videoDeleterSrv) removeByURL(ctx context.Context, bucket, url string) {
	key, ok := s.strg.KeyFromURL(bucket, url)
	if !ok {
		logger.Warnf(ctx, "url %q does not belong to bucket %q, skipping", url, bucket)
		return
	}
	if err := s.strg.RemoveFile(ctx, bucket, key); err != nil {
		logger.Warnf(ctx, "could not remove object %q from bucket %q: %v", key, bucket, err)
	}
}
