package worker

import (
	"context"
	"log"

	"github.com/creatorly/videos-ms-go/internal/port"
	"github.com/creatorly/videos-ms-go/internal/task"
)

// ProcessVideoHandler handles a process-video task. It converts the incoming
// task payload to the input expected by the port.VideoProcessor service and
// delegates the call.
func ProcessVideoHandler(ctx context.Context, p task.ProcessVideoPayload, svc port.VideoProcessor) error {
	if p.VideoID <= 0 {
		log.Printf("❌  Invalid video ID %d", p.VideoID)
		return nil
	}

	if err := svc.ProcessVideo(ctx, p.VideoID); err != nil {
		log.Printf("❌  Failed to process video #%d: %v", p.VideoID, err)
		return err
	}

	log.Printf("✅  Finished processing run for video #%d", p.VideoID)
	return nil
}
