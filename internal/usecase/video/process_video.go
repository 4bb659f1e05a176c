package video

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/creatorly/videos-ms-go/internal/logger"
	"github.com/creatorly/videos-ms-go/internal/model"
	"github.com/creatorly/videos-ms-go/internal/port"
)

// ProcessorOptions carries the poll policy and target buckets of the
// background orchestrator.
type ProcessorOptions struct {
	PollInterval    time.Duration
	MaxPollAttempts int
	VideosBucket    string
	ThumbsBucket    string
}

func DefaultProcessorOptions(videosBucket, thumbsBucket string) ProcessorOptions {
	return ProcessorOptions{
		PollInterval:    DefaultPollInterval,
		MaxPollAttempts: DefaultMaxPollAttempts,
		VideosBucket:    videosBucket,
		ThumbsBucket:    thumbsBucket,
	}
}

type videoProcessorSrv struct {
	repo     port.VideoRepository
	accounts port.AccountRepository
	tc       port.TranscodeClient
	strg     port.Storage
	prober   port.DurationProber
	stager   port.Stager
	opts     ProcessorOptions
}

// compile-time check: *videoProcessorSrv must satisfy port.VideoProcessor
var _ port.VideoProcessor = (*videoProcessorSrv)(nil)

// NewVideoProcessor constructs the background orchestrator. It runs detached
// from the request that admitted the upload, on its own database handle.
func NewVideoProcessor(repo port.VideoRepository, accounts port.AccountRepository, tc port.TranscodeClient, strg port.Storage, prober port.DurationProber, stager port.Stager, opts ProcessorOptions) port.VideoProcessor {
	return &videoProcessorSrv{repo, accounts, tc, strg, prober, stager, opts}
}

// ProcessVideo drives one admitted upload through
// submitting → polling → {succeeded, failed, timed_out}. Every outcome past
// this point is absorbed into the persisted record; nothing propagates to a
// caller. The staging directory is removed on every exit path.
func (s *videoProcessorSrv) ProcessVideo(ctx context.Context, videoID int64) error {
	video, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return fmt.Errorf("could not load video #%d: %w", videoID, err)
	}
	if video.IsTerminal() {
		logger.Warnf(ctx, "video #%d already %s, skipping", video.ID, video.Status)
		return nil
	}

	defer func() {
		if err := s.stager.Remove(video.ProcessingKey); err != nil {
			logger.Warnf(ctx, "could not clean up staging dir %q: %v", video.ProcessingKey, err)
		}
	}()

	stagedPath := s.stager.FilePath(video.ProcessingKey, video.OriginalFilename)
	thumbProvided := video.ThumbnailURL != "" && video.ThumbnailURL != PlaceholderThumbnailURL

	if err := s.runTranscode(ctx, video, stagedPath, thumbProvided); err != nil {
		logger.Errorf(ctx, "transcoding failed for video #%d: %v", video.ID, err)
		s.rollback(ctx, video)
		return nil
	}

	if err := s.finalise(ctx, video, stagedPath, thumbProvided); err != nil {
		if errors.Is(err, errNoPlayableOutput) {
			logger.Errorf(ctx, "no playable output for video #%d, rolling back", video.ID)
			s.rollback(ctx, video)
			return nil
		}
		// The transcode itself succeeded; a finalisation error here leaves
		// the record pending for the reconciliation sweep rather than
		// charging the failure to the creator.
		logger.Errorf(ctx, "finalisation failed for video #%d: %v", video.ID, err)
		return nil
	}

	logger.Infof(ctx, "video #%d approved", video.ID)
	return nil
}

// runTranscode submits the staged file and polls the remote task to a
// terminal answer, under the bounded attempt budget.
func (s *videoProcessorSrv) runTranscode(ctx context.Context, video *model.Video, stagedPath string, thumbProvided bool) error {
	in := port.SubmitInput{
		StagedPath:    stagedPath,
		TargetFormat:  string(video.Kind),
		SkipThumbnail: thumbProvided,
		TaskID:        video.ProcessingKey,
	}
	if err := s.tc.Submit(ctx, in); err != nil {
		return fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	for attempt := 1; attempt <= s.opts.MaxPollAttempts; attempt++ {
		status, err := s.tc.Poll(ctx, video.ProcessingKey)
		if err != nil {
			// Transient failures of the status check consume the attempt
			// but never escalate.
			logger.Warnf(ctx, "poll %d/%d for task %q failed: %v", attempt, s.opts.MaxPollAttempts, video.ProcessingKey, err)
		} else {
			done, err := transition(status)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}

		if err := sleepCtx(ctx, s.opts.PollInterval); err != nil {
			return err
		}
	}

	return ErrPollingTimedOut
}

// transition consumes one poll result. It is the pure core of the polling
// state machine: completed ends polling, a remote error ends the task, and
// everything else (pending, not yet registered) keeps polling.
func transition(status port.TranscodeStatus) (done bool, err error) {
	switch status.State {
	case port.StateCompleted:
		return true, nil
	case port.StateError:
		return false, fmt.Errorf("%w: %s", ErrRemoteProcessing, status.Message)
	default:
		return false, nil
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
