package video

import (
	"context"
	"encoding/json"

	"github.com/creatorly/videos-ms-go/internal/logger"
	"github.com/creatorly/videos-ms-go/internal/port"
)

type statusGetterSrv struct {
	tc    port.TranscodeClient
	cache port.Cache
}

// compile-time check: *statusGetterSrv must satisfy port.ProcessingStatusGetter
var _ port.ProcessingStatusGetter = (*statusGetterSrv)(nil)

func NewProcessingStatusGetter(tc port.TranscodeClient, cache port.Cache) port.ProcessingStatusGetter {
	return &statusGetterSrv{tc, cache}
}

// GetProcessingStatus proxies the remote task status to the client, through a
// short cache so a polling frontend never hammers the transcoder. An
// unreachable transcoder answers "unknown" rather than an error: the client
// keeps polling either way.
func (s *statusGetterSrv) GetProcessingStatus(ctx context.Context, processingKey string) port.ProcessingStatusOutput {
	if data, err := s.cache.GetProcessingStatus(ctx, processingKey); err == nil && data != nil {
		var out port.ProcessingStatusOutput
		if err := json.Unmarshal(data, &out); err == nil {
			return out
		}
		logger.Warnf(ctx, "corrupt cached status for key %q, refetching", processingKey)
	}

	status, err := s.tc.Poll(ctx, processingKey)
	if err != nil {
		logger.Warnf(ctx, "could not reach transcoder for key %q: %v", processingKey, err)
		return port.ProcessingStatusOutput{Status: "unknown"}
	}

	out := port.ProcessingStatusOutput{
		Status:   string(status.State),
		Message:  status.Message,
		Progress: status.Progress,
	}

	if data, err := json.Marshal(out); err == nil {
		s.cache.SetProcessingStatus(ctx, processingKey, data, StatusCacheTTL)
	}
	return out
}
