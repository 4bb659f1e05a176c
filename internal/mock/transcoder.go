package mock

import (
	"context"

	"github.com/creatorly/videos-ms-go/internal/port"
)

// PollStep is one scripted answer of the fake transcoder status endpoint.
type PollStep struct {
	Status port.TranscodeStatus
	Err    error
}

// MockTranscoder implements port.TranscodeClient for tests. Poll walks the
// Steps script; once exhausted it repeats the last step (or pending).
type MockTranscoder struct {
	SubmitErr error
	Steps     []PollStep

	SubmitCalled int
	Submitted    port.SubmitInput
	PollCalled   int
	PolledTaskID string
}

func (m *MockTranscoder) Submit(ctx context.Context, in port.SubmitInput) error {
	m.SubmitCalled++
	m.Submitted = in
	return m.SubmitErr
}

func (m *MockTranscoder) Poll(ctx context.Context, taskID string) (port.TranscodeStatus, error) {
	m.PollCalled++
	m.PolledTaskID = taskID
	if len(m.Steps) == 0 {
		return port.TranscodeStatus{State: port.StatePending}, nil
	}
	i := m.PollCalled - 1
	if i >= len(m.Steps) {
		i = len(m.Steps) - 1
	}
	step := m.Steps[i]
	return step.Status, step.Err
}
