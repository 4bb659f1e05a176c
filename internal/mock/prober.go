package mock

import "context"

// MockProber implements port.DurationProber for tests.
type MockProber struct {
	Out int
	Err error

	Called     bool
	ProbedPath string
}

func (m *MockProber) ProbeDuration(ctx context.Context, path string) (int, error) {
	m.Called = true
	m.ProbedPath = path
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Out, nil
}
