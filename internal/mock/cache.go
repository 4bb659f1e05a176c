package mock

import (
	"context"
	"time"
)

// MockCache implements port.Cache for tests.
type MockCache struct {
	GetOut []byte
	GetErr error

	GetCalled    bool
	SetCalled    bool
	SetKey       string
	SetData      []byte
	SetTTL       time.Duration
	DeleteCalled bool
	DeletedKey   string
}

func (m *MockCache) GetProcessingStatus(ctx context.Context, key string) ([]byte, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.GetOut, nil
}

func (m *MockCache) SetProcessingStatus(ctx context.Context, key string, data []byte, ttl time.Duration) {
	m.SetCalled = true
	m.SetKey = key
	m.SetData = data
	m.SetTTL = ttl
}

func (m *MockCache) DeleteProcessingStatus(ctx context.Context, key string) error {
	m.DeleteCalled = true
	m.DeletedKey = key
	return nil
}
