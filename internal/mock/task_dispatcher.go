package mock

import "context"

// MockDispatcher implements port.TaskDispatcher for tests.
type MockDispatcher struct {
	Err error

	Called      int
	EnqueuedIDs []int64
}

func (m *MockDispatcher) EnqueueProcessVideo(ctx context.Context, videoID int64) error {
	m.Called++
	m.EnqueuedIDs = append(m.EnqueuedIDs, videoID)
	return m.Err
}
