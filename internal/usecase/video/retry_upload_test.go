package video

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/creatorly/videos-ms-go/internal/mock"
	"github.com/creatorly/videos-ms-go/internal/model"
	"github.com/creatorly/videos-ms-go/internal/port"
)

func failedVideo() *model.Video {
	v := pendingVideo()
	v.Status = model.VideoStatusFailed
	return v
}

func retryInput() port.RetryUploadInput {
	return port.RetryUploadInput{
		VideoID:   42,
		AccountID: 7,
		Filename:  "clip_v2.mp4",
		File:      strings.NewReader("new bytes"),
	}
}

func TestRetryUpload_NotOwner(t *testing.T) {
	repo := &mock.MockVideoRepo{VideoRecord: failedVideo()}
	svc := NewUploadRetrier(repo, &mock.MockAccountRepo{}, &mock.MockStager{}, &mock.MockDispatcher{})

	in := retryInput()
	in.AccountID = 99
	if _, err := svc.RetryUpload(context.Background(), in); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestRetryUpload_NotFailed(t *testing.T) {
	repo := &mock.MockVideoRepo{VideoRecord: pendingVideo()}
	stager := &mock.MockStager{}
	svc := NewUploadRetrier(repo, &mock.MockAccountRepo{}, stager, &mock.MockDispatcher{})

	if _, err := svc.RetryUpload(context.Background(), retryInput()); !errors.Is(err, ErrNotRetryable) {
		t.Fatalf("expected ErrNotRetryable, got %v", err)
	}
	if stager.StageCalled {
		t.Error("nothing should be staged for a non-failed video")
	}
}

func TestRetryUpload_Success(t *testing.T) {
	repo := &mock.MockVideoRepo{VideoRecord: failedVideo()}
	stager := &mock.MockStager{StageOut: port.StagedUpload{
		Key:      "key-2",
		Dir:      "/staging/key-2",
		FilePath: "/staging/key-2/clip_v2.mp4",
	}}
	tasks := &mock.MockDispatcher{}
	svc := NewUploadRetrier(repo, &mock.MockAccountRepo{}, stager, tasks)

	out, err := svc.RetryUpload(context.Background(), retryInput())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if out.ID != 42 || out.ProcessingKey != "key-2" {
		t.Errorf("unexpected output %+v", out)
	}
	if repo.Readmitted == nil || repo.Readmitted.ProcessingKey != "key-2" {
		t.Error("the row should be readmitted with the fresh key")
	}
	if repo.Readmitted.OriginalFilename != "clip_v2.mp4" {
		t.Errorf("unexpected original filename %q", repo.Readmitted.OriginalFilename)
	}
	if len(tasks.EnqueuedIDs) != 1 || tasks.EnqueuedIDs[0] != 42 {
		t.Errorf("expected task for video 42, got %v", tasks.EnqueuedIDs)
	}
}

func TestRetryUpload_ReadmitErrorCleansStaging(t *testing.T) {
	repo := &mock.MockVideoRepo{VideoRecord: failedVideo(), ReadmitErr: ErrQuotaExceeded}
	stager := &mock.MockStager{StageOut: port.StagedUpload{Key: "key-2", FilePath: "/staging/key-2/clip_v2.mp4"}}
	tasks := &mock.MockDispatcher{}
	svc := NewUploadRetrier(repo, &mock.MockAccountRepo{}, stager, tasks)

	if _, err := svc.RetryUpload(context.Background(), retryInput()); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if stager.RemoveCalled != 1 {
		t.Errorf("staging dir should be removed once, got %d", stager.RemoveCalled)
	}
	if tasks.Called != 0 {
		t.Error("no task when readmission is refused")
	}
}

func TestRetryUpload_DispatchFailureCompensates(t *testing.T) {
	repo := &mock.MockVideoRepo{VideoRecord: failedVideo(), MarkFailedOut: true}
	accounts := &mock.MockAccountRepo{}
	stager := &mock.MockStager{StageOut: port.StagedUpload{Key: "key-2", FilePath: "/staging/key-2/clip_v2.mp4"}}
	tasks := &mock.MockDispatcher{Err: errors.New("queue down")}
	svc := NewUploadRetrier(repo, accounts, stager, tasks)

	if _, err := svc.RetryUpload(context.Background(), retryInput()); err == nil {
		t.Fatal("expected error when dispatch fails")
	}
	if repo.MarkFailedCalled != 1 || accounts.ReleaseCalled != 1 {
		t.Error("dispatch failure should undo the readmission")
	}
	if stager.RemoveCalled != 1 {
		t.Errorf("staging dir should be removed once, got %d", stager.RemoveCalled)
	}
}
