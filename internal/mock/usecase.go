package mock

import (
	"context"

	"github.com/creatorly/videos-ms-go/internal/model"
	"github.com/creatorly/videos-ms-go/internal/port"
)

// MockUploadAdmitter implements port.UploadAdmitter for tests.
type MockUploadAdmitter struct {
	Out    port.AdmitUploadOutput
	Err    error
	Called bool
	In     port.AdmitUploadInput
}

func (m *MockUploadAdmitter) AdmitUpload(ctx context.Context, in port.AdmitUploadInput) (port.AdmitUploadOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// MockVideoProcessor implements port.VideoProcessor for tests.
type MockVideoProcessor struct {
	Err       error
	Called    bool
	ProcessID int64
}

func (m *MockVideoProcessor) ProcessVideo(ctx context.Context, videoID int64) error {
	m.Called = true
	m.ProcessID = videoID
	return m.Err
}

// MockStatusGetter implements port.ProcessingStatusGetter for tests.
type MockStatusGetter struct {
	Out    port.ProcessingStatusOutput
	Called bool
	Key    string
}

func (m *MockStatusGetter) GetProcessingStatus(ctx context.Context, processingKey string) port.ProcessingStatusOutput {
	m.Called = true
	m.Key = processingKey
	return m.Out
}

// MockVideoLister implements port.VideoLister for tests.
type MockVideoLister struct {
	Out    []*model.Video
	Err    error
	Called bool
	In     port.ListVideosInput
}

func (m *MockVideoLister) ListVideos(ctx context.Context, in port.ListVideosInput) ([]*model.Video, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// MockUploadRetrier implements port.UploadRetrier for tests.
type MockUploadRetrier struct {
	Out    port.AdmitUploadOutput
	Err    error
	Called bool
	In     port.RetryUploadInput
}

func (m *MockUploadRetrier) RetryUpload(ctx context.Context, in port.RetryUploadInput) (port.AdmitUploadOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// MockVideoDeleter implements port.VideoDeleter for tests.
type MockVideoDeleter struct {
	Err       error
	Called    bool
	VideoID   int64
	AccountID int64
}

func (m *MockVideoDeleter) DeleteVideo(ctx context.Context, videoID, accountID int64) error {
	m.Called = true
	m.VideoID = videoID
	m.AccountID = accountID
	return m.Err
}

// MockPendingRequeuer implements port.PendingRequeuer for tests.
type MockPendingRequeuer struct {
	Err    error
	Called bool
}

func (m *MockPendingRequeuer) RequeuePending(ctx context.Context) error {
	m.Called = true
	return m.Err
}
