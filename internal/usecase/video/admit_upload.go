package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"time"

	_ "golang.org/x/image/webp"

	"github.com/creatorly/videos-ms-go/internal/logger"
	"github.com/creatorly/videos-ms-go/internal/model"
	"github.com/creatorly/videos-ms-go/internal/port"
)

type uploadAdmitterSrv struct {
	repo         port.VideoRepository
	accounts     port.AccountRepository
	stager       port.Stager
	strg         port.Storage
	tasks        port.TaskDispatcher
	thumbsBucket string
}

// compile-time check: *uploadAdmitterSrv must satisfy port.UploadAdmitter
var _ port.UploadAdmitter = (*uploadAdmitterSrv)(nil)

// NewUploadAdmitter constructs the synchronous admission service: staging,
// quota-checked record creation and background-task dispatch.
func NewUploadAdmitter(repo port.VideoRepository, accounts port.AccountRepository, stager port.Stager, strg port.Storage, tasks port.TaskDispatcher, thumbsBucket string) port.UploadAdmitter {
	return &uploadAdmitterSrv{repo, accounts, stager, strg, tasks, thumbsBucket}
}

func (s *uploadAdmitterSrv) AdmitUpload(ctx context.Context, in port.AdmitUploadInput) (port.AdmitUploadOutput, error) {
	if !in.Kind.IsValid() {
		return port.AdmitUploadOutput{}, fmt.Errorf("unknown video type %q", in.Kind)
	}

	staged, err := s.stager.Stage(ctx, in.Filename, in.File)
	if err != nil {
		return port.AdmitUploadOutput{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	thumbnailURL := PlaceholderThumbnailURL
	if in.Thumbnail != nil {
		if url, err := s.saveClientThumbnail(ctx, in.Thumbnail); err != nil {
			logger.Warnf(ctx, "could not store client thumbnail %q: %v", in.Thumbnail.Filename, err)
		} else {
			thumbnailURL = url
		}
	}

	video := &model.Video{
		OwnerID:          in.AccountID,
		Title:            in.Title,
		Kind:             in.Kind,
		Status:           model.VideoStatusPending,
		ProcessingKey:    staged.Key,
		OriginalFilename: filepath.Base(staged.FilePath),
		ThumbnailURL:     thumbnailURL,
	}

	// Quota reservation and row creation share one transaction: a crash
	// between them cannot leave the counter and the record diverged.
	if err := s.repo.AdmitVideo(ctx, video, DefaultQuotaLimits); err != nil {
		if rmErr := s.stager.Remove(staged.Key); rmErr != nil {
			logger.Warnf(ctx, "could not clean up staging dir %q: %v", staged.Key, rmErr)
		}
		return port.AdmitUploadOutput{}, err
	}

	if err := s.tasks.EnqueueProcessVideo(ctx, video.ID); err != nil {
		// Without a background task the upload can never converge; undo the
		// admission so the quota slot is not permanently consumed.
		undoAdmission(ctx, s.repo, s.accounts, s.stager, video)
		return port.AdmitUploadOutput{}, fmt.Errorf("could not dispatch processing task for video #%d: %w", video.ID, err)
	}

	return port.AdmitUploadOutput{ID: video.ID, ProcessingKey: video.ProcessingKey}, nil
}

// saveClientThumbnail decode-checks the uploaded image (png/jpeg/webp) and
// stores it under a fresh key in the thumbs bucket.
func (s *uploadAdmitterSrv) saveClientThumbnail(ctx context.Context, t *port.ThumbnailUpload) (string, error) {
	data, err := io.ReadAll(t.Reader)
	if err != nil {
		return "", fmt.Errorf("error reading thumbnail data: %w", err)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("error decoding thumbnail config: %w", err)
	}

	key := fmt.Sprintf("custom_%d_%s", time.Now().Unix(), filepath.Base(t.Filename))
	return s.strg.SaveFile(ctx, s.thumbsBucket, key, bytes.NewReader(data), int64(len(data)), t.ContentType)
}
