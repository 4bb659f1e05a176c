package prober

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/creatorly/videos-ms-go/internal/port"
)

// FFProbe shells out to ffprobe to read a media duration. Callers treat any
// error as duration 0.
type FFProbe struct {
	binary string
}

// compile-time check: *FFProbe must satisfy port.DurationProber
var _ port.DurationProber = (*FFProbe)(nil)

func NewFFProbe() *FFProbe {
	return &FFProbe{binary: "ffprobe"}
}

func (p *FFProbe) ProbeDuration(ctx context.Context, path string) (int, error) {
	cmd := exec.CommandContext(ctx, p.binary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %q: %w", path, err)
	}
	return ParseDuration(string(out))
}

// ParseDuration converts ffprobe's stdout (seconds as a float) to whole
// seconds.
func ParseDuration(out string) (int, error) {
	secs, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("malformed ffprobe output %q: %w", strings.TrimSpace(out), err)
	}
	if secs < 0 {
		return 0, fmt.Errorf("negative duration %f", secs)
	}
	return int(secs), nil
}
