package model

import (
	"time"
)

type VideoStatus string

const (
	VideoStatusPending  VideoStatus = "pending"
	VideoStatusApproved VideoStatus = "approved"
	VideoStatusFailed   VideoStatus = "failed"
)

// VideoKind is the declared content type of an upload. It selects the quota
// counter charged at admission and the target format sent to the transcoder.
type VideoKind string

const (
	VideoKindHome  VideoKind = "home"
	VideoKindFlash VideoKind = "flash"
)

func (k VideoKind) IsValid() bool {
	return k == VideoKindHome || k == VideoKindFlash
}

// ResolutionLadder is the fixed set of output tiers the transcoder may
// produce, matching the `<staged file>_<suffix>.mp4` naming convention.
var ResolutionLadder = []string{"480p", "720p", "1080p", "1440p", "2160p"}

type Video struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"owner_id"`
	Title   string `json:"title"`

	Kind   VideoKind   `json:"video_type"`
	Status VideoStatus `json:"status"`

	// ProcessingKey correlates this row with one staging directory and one
	// remote transcoding task. Set at creation, unique, never reused.
	ProcessingKey    string `json:"processing_key"`
	OriginalFilename string `json:"original_filename"`

	VideoURL string  `json:"video_url"`
	URL480p  *string `json:"url_480p"`
	URL720p  *string `json:"url_720p"`
	URL1080p *string `json:"url_1080p"`
	URL2K    *string `json:"url_2k"`
	URL4K    *string `json:"url_4k"`

	ThumbnailURL string `json:"thumbnail_url"`
	Duration     int    `json:"duration"`

	Views    int     `json:"views"`
	Shares   int     `json:"shares"`
	Earnings float64 `json:"earnings"`

	FailedAt  *time.Time `json:"failed_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PreferredURL picks the playback fallback from the ladder: 720p first,
// degrading to 1080p then 480p, empty when none of those tiers exist.
func PreferredURL(url480p, url720p, url1080p *string) string {
	for _, u := range []*string{url720p, url1080p, url480p} {
		if u != nil && *u != "" {
			return *u
		}
	}
	return ""
}

func (v *Video) IsTerminal() bool {
	return v.Status == VideoStatusApproved || v.Status == VideoStatusFailed
}
