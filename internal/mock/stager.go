package mock

import (
	"context"
	"io"
	"path/filepath"

	"github.com/creatorly/videos-ms-go/internal/port"
)

// MockStager implements port.Stager for tests without touching the disk.
type MockStager struct {
	StageOut  port.StagedUpload
	StageErr  error
	RemoveErr error
	ExistsOut bool

	Root string

	StageCalled    bool
	StagedFilename string
	StagedData     []byte
	RemoveCalled   int
	RemovedKeys    []string
	ExistsCalled   bool
}

func (m *MockStager) Stage(ctx context.Context, filename string, r io.Reader) (port.StagedUpload, error) {
	m.StageCalled = true
	m.StagedFilename = filename
	if m.StageErr != nil {
		return port.StagedUpload{}, m.StageErr
	}
	if r != nil {
		data, err := io.ReadAll(r)
		if err != nil {
			return port.StagedUpload{}, err
		}
		m.StagedData = data
	}
	return m.StageOut, nil
}

func (m *MockStager) FilePath(key, filename string) string {
	root := m.Root
	if root == "" {
		root = "/staging"
	}
	return filepath.Join(root, key, filename)
}

func (m *MockStager) Exists(key string) bool {
	m.ExistsCalled = true
	return m.ExistsOut
}

func (m *MockStager) Remove(key string) error {
	m.RemoveCalled++
	m.RemovedKeys = append(m.RemovedKeys, key)
	return m.RemoveErr
}
