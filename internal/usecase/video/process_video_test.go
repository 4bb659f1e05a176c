package video

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/creatorly/videos-ms-go/internal/mock"
	"github.com/creatorly/videos-ms-go/internal/model"
	"github.com/creatorly/videos-ms-go/internal/port"
)

func testOptions() ProcessorOptions {
	return ProcessorOptions{
		PollInterval:    time.Millisecond,
		MaxPollAttempts: 5,
		VideosBucket:    "videos",
		ThumbsBucket:    "thumbs",
	}
}

func pendingVideo() *model.Video {
	return &model.Video{
		ID:               42,
		OwnerID:          7,
		Title:            "My Clip",
		Kind:             model.VideoKindHome,
		Status:           model.VideoStatusPending,
		ProcessingKey:    "key-1",
		OriginalFilename: "clip.mp4",
		ThumbnailURL:     PlaceholderThumbnailURL,
	}
}

func processorFixtures(t *testing.T, renditions ...string) (*mock.MockVideoRepo, *mock.MockAccountRepo, *mock.MockTranscoder, *mock.Storage, *mock.MockProber, *mock.MockStager) {
	t.Helper()
	repo := &mock.MockVideoRepo{VideoRecord: pendingVideo(), MarkFailedOut: true}
	accounts := &mock.MockAccountRepo{}
	tc := &mock.MockTranscoder{}
	strg := &mock.Storage{}
	prober := &mock.MockProber{Out: 95}
	stager := &mock.MockStager{Root: t.TempDir()}

	dir := filepath.Join(stager.Root, "key-1")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "clip.mp4"), []byte("source"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, name := range renditions {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("out"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return repo, accounts, tc, strg, prober, stager
}

// PollStepList aliases the mock script type to keep fixtures short.
type PollStepList = []mock.PollStep

func TestProcessVideo_CompletedOnThirdAttempt(t *testing.T) {
	repo, accounts, tc, strg, prober, stager := processorFixtures(t, "clip.mp4_720p.mp4")
	tc.Steps = PollStepList{
		{Status: port.TranscodeStatus{State: port.StatePending}},
		{Status: port.TranscodeStatus{State: port.StatePending, Progress: 50}},
		{Status: port.TranscodeStatus{State: port.StateCompleted}},
	}
	svc := NewVideoProcessor(repo, accounts, tc, strg, prober, stager, testOptions())

	if err := svc.ProcessVideo(context.Background(), 42); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if tc.PollCalled != 3 {
		t.Errorf("expected 3 polls, got %d", tc.PollCalled)
	}
	if !repo.ApproveCalled {
		t.Error("video should be approved")
	}
	if repo.MarkFailedCalled != 0 {
		t.Error("no failure transition expected")
	}
	if stager.RemoveCalled == 0 {
		t.Error("staging dir should be removed")
	}
}

func TestProcessVideo_RemoteError(t *testing.T) {
	repo, accounts, tc, strg, prober, stager := processorFixtures(t)
	tc.Steps = PollStepList{
		{Status: port.TranscodeStatus{State: port.StateError, Message: "codec unsupported"}},
	}
	svc := NewVideoProcessor(repo, accounts, tc, strg, prober, stager, testOptions())

	if err := svc.ProcessVideo(context.Background(), 42); err != nil {
		t.Fatalf("background failures must be absorbed, got %v", err)
	}
	if tc.SubmitCalled != 1 {
		t.Errorf("the task must not be resubmitted, got %d submits", tc.SubmitCalled)
	}
	if repo.MarkFailedCalled != 1 {
		t.Errorf("video should be marked failed once, got %d", repo.MarkFailedCalled)
	}
	if accounts.ReleaseCalled != 1 {
		t.Errorf("quota should be released once, got %d", accounts.ReleaseCalled)
	}
	if repo.ApproveCalled {
		t.Error("a failed video must not be approved")
	}
	if stager.RemoveCalled == 0 {
		t.Error("staging dir should be removed")
	}
}

func TestProcessVideo_Timeout(t *testing.T) {
	repo, accounts, tc, strg, prober, stager := processorFixtures(t)
	// no steps: the fake transcoder answers pending forever
	svc := NewVideoProcessor(repo, accounts, tc, strg, prober, stager, testOptions())

	if err := svc.ProcessVideo(context.Background(), 42); err != nil {
		t.Fatalf("background failures must be absorbed, got %v", err)
	}
	if tc.PollCalled != 5 {
		t.Errorf("expected exactly %d polls, got %d", 5, tc.PollCalled)
	}
	if repo.MarkFailedCalled != 1 {
		t.Error("a timed out video should be marked failed")
	}
	if accounts.ReleaseCalled != 1 {
		t.Error("quota should be released on timeout")
	}
}

func TestProcessVideo_NotFoundTolerated(t *testing.T) {
	repo, accounts, tc, strg, prober, stager := processorFixtures(t, "clip.mp4_480p.mp4")
	tc.Steps = PollStepList{
		{Status: port.TranscodeStatus{State: port.StateNotFound}},
		{Status: port.TranscodeStatus{State: port.StateNotFound}},
		{Status: port.TranscodeStatus{State: port.StateCompleted}},
	}
	svc := NewVideoProcessor(repo, accounts, tc, strg, prober, stager, testOptions())

	if err := svc.ProcessVideo(context.Background(), 42); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if !repo.ApproveCalled {
		t.Error("a task found late should still converge to approved")
	}
}

func TestProcessVideo_PollErrorsConsumeAttempts(t *testing.T) {
	repo, accounts, tc, strg, prober, stager := processorFixtures(t, "clip.mp4_720p.mp4")
	tc.Steps = PollStepList{
		{Err: errors.New("connection refused")},
		{Err: errors.New("connection refused")},
		{Status: port.TranscodeStatus{State: port.StateCompleted}},
	}
	svc := NewVideoProcessor(repo, accounts, tc, strg, prober, stager, testOptions())

	if err := svc.ProcessVideo(context.Background(), 42); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if tc.PollCalled != 3 {
		t.Errorf("expected 3 polls, got %d", tc.PollCalled)
	}
	if !repo.ApproveCalled {
		t.Error("transient poll errors must not fail the video")
	}
}

func TestProcessVideo_SubmitError(t *testing.T) {
	repo, accounts, tc, strg, prober, stager := processorFixtures(t)
	tc.SubmitErr = errors.New("transcoder down")
	svc := NewVideoProcessor(repo, accounts, tc, strg, prober, stager, testOptions())

	if err := svc.ProcessVideo(context.Background(), 42); err != nil {
		t.Fatalf("background failures must be absorbed, got %v", err)
	}
	if tc.PollCalled != 0 {
		t.Error("no polling after a failed submission")
	}
	if repo.MarkFailedCalled != 1 || accounts.ReleaseCalled != 1 {
		t.Error("submission failure should roll back the admission")
	}
}

func TestProcessVideo_AlreadyTerminal(t *testing.T) {
	repo, accounts, tc, strg, prober, stager := processorFixtures(t)
	repo.VideoRecord.Status = model.VideoStatusApproved
	svc := NewVideoProcessor(repo, accounts, tc, strg, prober, stager, testOptions())

	if err := svc.ProcessVideo(context.Background(), 42); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if tc.SubmitCalled != 0 {
		t.Error("a terminal video must never be resubmitted")
	}
	if stager.RemoveCalled != 0 {
		t.Error("a terminal video's staging must be left alone")
	}
}

func TestProcessVideo_GetError(t *testing.T) {
	repo, accounts, tc, strg, prober, stager := processorFixtures(t)
	repo.GetErr = errors.New("db down")
	svc := NewVideoProcessor(repo, accounts, tc, strg, prober, stager, testOptions())

	if err := svc.ProcessVideo(context.Background(), 42); err == nil {
		t.Fatal("a load failure must surface so the queue can retry delivery")
	}
	if tc.SubmitCalled != 0 {
		t.Error("nothing should be submitted when the record cannot load")
	}
}

func TestProcessVideo_Cancelled(t *testing.T) {
	repo, accounts, tc, strg, prober, stager := processorFixtures(t)
	svc := NewVideoProcessor(repo, accounts, tc, strg, prober, stager, testOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.ProcessVideo(ctx, 42); err != nil {
		t.Fatalf("background failures must be absorbed, got %v", err)
	}
	if tc.PollCalled > 1 {
		t.Errorf("polling should stop on cancellation, got %d polls", tc.PollCalled)
	}
}
