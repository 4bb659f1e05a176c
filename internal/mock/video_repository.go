package mock

import (
	"context"
	"time"

	"github.com/creatorly/videos-ms-go/internal/model"
	"github.com/creatorly/videos-ms-go/internal/port"
)

// MockVideoRepo implements port.VideoRepository for tests.
type MockVideoRepo struct {
	VideoRecord *model.Video

	AdmitErr       error
	ReadmitErr     error
	GetErr         error
	DeleteErr      error
	ApproveErr     error
	MarkFailedErr  error
	ListErr        error
	ListPendingErr error

	MarkFailedOut  bool
	ListOut        []*model.Video
	ListPendingOut []int64

	AdmitCalled      bool
	ReadmitCalled    bool
	GetCalled        bool
	DeleteCalled     bool
	ApproveCalled    bool
	MarkFailedCalled int

	Admitted       *model.Video
	Readmitted     *model.Video
	DeletedID      int64
	Approved       *port.ApprovedVideo
	MarkedFailedID int64
	FailedAt       time.Time
	ListFilter     port.VideoFilter
	StaleBefore    time.Time
	PendingBefore  time.Time

	NextID int64
}

func (m *MockVideoRepo) AdmitVideo(ctx context.Context, video *model.Video, limits model.QuotaLimits) error {
	m.AdmitCalled = true
	m.Admitted = video
	if m.AdmitErr != nil {
		return m.AdmitErr
	}
	if m.NextID != 0 {
		video.ID = m.NextID
	}
	return nil
}

func (m *MockVideoRepo) ReadmitVideo(ctx context.Context, video *model.Video, limits model.QuotaLimits) error {
	m.ReadmitCalled = true
	m.Readmitted = video
	return m.ReadmitErr
}

func (m *MockVideoRepo) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.VideoRecord, nil
}

func (m *MockVideoRepo) Delete(ctx context.Context, id int64) error {
	m.DeleteCalled = true
	m.DeletedID = id
	return m.DeleteErr
}

func (m *MockVideoRepo) Approve(ctx context.Context, approved port.ApprovedVideo) error {
	m.ApproveCalled = true
	m.Approved = &approved
	return m.ApproveErr
}

func (m *MockVideoRepo) MarkFailed(ctx context.Context, id int64, failedAt time.Time) (bool, error) {
	m.MarkFailedCalled++
	m.MarkedFailedID = id
	m.FailedAt = failedAt
	if m.MarkFailedErr != nil {
		return false, m.MarkFailedErr
	}
	// First call transitions, later calls find the row already failed.
	return m.MarkFailedOut && m.MarkFailedCalled == 1, nil
}

func (m *MockVideoRepo) ListVisible(ctx context.Context, filter port.VideoFilter, staleBefore time.Time) ([]*model.Video, error) {
	m.ListFilter = filter
	m.StaleBefore = staleBefore
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}

func (m *MockVideoRepo) ListPendingCreatedBefore(ctx context.Context, before time.Time) ([]int64, error) {
	m.PendingBefore = before
	if m.ListPendingErr != nil {
		return nil, m.ListPendingErr
	}
	return m.ListPendingOut, nil
}
