package mock

import (
	"context"

	"github.com/creatorly/videos-ms-go/internal/model"
)

// MockAccountRepo implements port.AccountRepository for tests.
type MockAccountRepo struct {
	AccountRecord *model.Account

	GetErr     error
	ReleaseErr error

	GetCalled      bool
	ReleaseCalled  int
	ReleasedID     int64
	ReleasedKind   model.VideoKind
}

func (m *MockAccountRepo) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.AccountRecord, nil
}

func (m *MockAccountRepo) ReleaseQuota(ctx context.Context, accountID int64, kind model.VideoKind) error {
	m.ReleaseCalled++
	m.ReleasedID = accountID
	m.ReleasedKind = kind
	return m.ReleaseErr
}
