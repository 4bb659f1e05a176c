package video

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/creatorly/videos-ms-go/internal/logger"
	"github.com/creatorly/videos-ms-go/internal/model"
	"github.com/creatorly/videos-ms-go/internal/port"
)

// errNoPlayableOutput means not a single transcoded rendition could be
// relocated; the record must fail rather than go live unplayable.
var errNoPlayableOutput = errors.New("no playable output produced")

// finalise relocates every rendition the transcoder produced from the staging
// directory into durable storage, then flips the record to approved in one
// write. Individual missing or unuploadable tiers are tolerated.
func (s *videoProcessorSrv) finalise(ctx context.Context, video *model.Video, stagedPath string, thumbProvided bool) error {
	base := baseFilename(video.Title, stagedPath)

	urls := make(map[string]*string, len(model.ResolutionLadder))
	uploaded := 0
	for _, suffix := range model.ResolutionLadder {
		localPath := fmt.Sprintf("%s_%s.mp4", stagedPath, suffix)
		if _, err := os.Stat(localPath); err != nil {
			continue
		}

		key := fmt.Sprintf("%s_%s.mp4", base, suffix)
		url, err := s.strg.UploadFile(ctx, s.opts.VideosBucket, key, localPath, "video/mp4")
		if err != nil {
			logger.Warnf(ctx, "could not upload %s rendition of video #%d: %v", suffix, video.ID, err)
			continue
		}
		urls[suffix] = &url
		uploaded++
	}
	if uploaded == 0 {
		return errNoPlayableOutput
	}

	approved := port.ApprovedVideo{
		ID:       video.ID,
		URL480p:  urls["480p"],
		URL720p:  urls["720p"],
		URL1080p: urls["1080p"],
		URL2K:    urls["1440p"],
		URL4K:    urls["2160p"],
	}
	approved.VideoURL = model.PreferredURL(approved.URL480p, approved.URL720p, approved.URL1080p)

	if !thumbProvided {
		thumbPath := stagedPath + ".jpg"
		if _, err := os.Stat(thumbPath); err == nil {
			url, err := s.strg.UploadFile(ctx, s.opts.ThumbsBucket, base+".jpg", thumbPath, "image/jpeg")
			if err != nil {
				logger.Warnf(ctx, "could not upload generated thumbnail of video #%d: %v", video.ID, err)
			} else {
				approved.ThumbnailURL = url
			}
		}
	}

	// A probe failure stores duration 0 rather than failing the pipeline.
	duration, err := s.prober.ProbeDuration(ctx, stagedPath)
	if err != nil {
		logger.Warnf(ctx, "could not probe duration of video #%d: %v", video.ID, err)
		duration = 0
	}
	approved.Duration = duration

	if err := s.repo.Approve(ctx, approved); err != nil {
		return fmt.Errorf("could not approve video #%d: %w", video.ID, err)
	}
	return nil
}

// baseFilename derives the durable object name shared by every rendition of
// one video: the cleaned title plus the staged file's modification time, so
// two uploads with the same title never collide.
func baseFilename(title, stagedPath string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	clean := b.String()
	if clean == "" {
		clean = "video"
	}

	var mtime int64
	if info, err := os.Stat(stagedPath); err == nil {
		mtime = info.ModTime().Unix()
	}
	return fmt.Sprintf("%s_%d", clean, mtime)
}
