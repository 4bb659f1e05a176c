package video

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/creatorly/videos-ms-go/internal/mock"
	"github.com/creatorly/videos-ms-go/internal/model"
	"github.com/creatorly/videos-ms-go/internal/port"
)

func admitFixtures() (*mock.MockVideoRepo, *mock.MockAccountRepo, *mock.MockStager, *mock.Storage, *mock.MockDispatcher) {
	repo := &mock.MockVideoRepo{NextID: 42, MarkFailedOut: true}
	accounts := &mock.MockAccountRepo{}
	stager := &mock.MockStager{StageOut: port.StagedUpload{
		Key:      "key-1",
		Dir:      "/staging/key-1",
		FilePath: "/staging/key-1/clip.mp4",
	}}
	strg := &mock.Storage{}
	tasks := &mock.MockDispatcher{}
	return repo, accounts, stager, strg, tasks
}

func admitInput() port.AdmitUploadInput {
	return port.AdmitUploadInput{
		AccountID: 7,
		Kind:      model.VideoKindHome,
		Title:     "My Clip",
		Filename:  "clip.mp4",
		File:      strings.NewReader("video bytes"),
	}
}

func TestAdmitUpload_InvalidKind(t *testing.T) {
	repo, accounts, stager, strg, tasks := admitFixtures()
	svc := NewUploadAdmitter(repo, accounts, stager, strg, tasks, "thumbs")

	in := admitInput()
	in.Kind = "shorts"
	if _, err := svc.AdmitUpload(context.Background(), in); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if stager.StageCalled {
		t.Error("nothing should be staged for an invalid kind")
	}
}

func TestAdmitUpload_StagingError(t *testing.T) {
	repo, accounts, stager, strg, tasks := admitFixtures()
	stager.StageErr = errors.New("disk full")
	svc := NewUploadAdmitter(repo, accounts, stager, strg, tasks, "thumbs")

	_, err := svc.AdmitUpload(context.Background(), admitInput())
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if repo.AdmitCalled {
		t.Error("no record should be created when staging fails")
	}
}

func TestAdmitUpload_QuotaExceeded(t *testing.T) {
	repo, accounts, stager, strg, tasks := admitFixtures()
	repo.AdmitErr = ErrQuotaExceeded
	svc := NewUploadAdmitter(repo, accounts, stager, strg, tasks, "thumbs")

	_, err := svc.AdmitUpload(context.Background(), admitInput())
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if stager.RemoveCalled != 1 {
		t.Errorf("staging dir should be removed once, got %d", stager.RemoveCalled)
	}
	if tasks.Called != 0 {
		t.Error("no task should be dispatched when admission is refused")
	}
}

func TestAdmitUpload_DispatchFailureCompensates(t *testing.T) {
	repo, accounts, stager, strg, tasks := admitFixtures()
	tasks.Err = errors.New("queue down")
	svc := NewUploadAdmitter(repo, accounts, stager, strg, tasks, "thumbs")

	if _, err := svc.AdmitUpload(context.Background(), admitInput()); err == nil {
		t.Fatal("expected error when dispatch fails")
	}
	if repo.MarkFailedCalled != 1 {
		t.Errorf("record should be marked failed once, got %d", repo.MarkFailedCalled)
	}
	if accounts.ReleaseCalled != 1 {
		t.Errorf("quota should be released once, got %d", accounts.ReleaseCalled)
	}
	if accounts.ReleasedKind != model.VideoKindHome {
		t.Errorf("quota released for wrong kind %q", accounts.ReleasedKind)
	}
	if stager.RemoveCalled != 1 {
		t.Errorf("staging dir should be removed once, got %d", stager.RemoveCalled)
	}
}

func TestAdmitUpload_Success(t *testing.T) {
	repo, accounts, stager, strg, tasks := admitFixtures()
	svc := NewUploadAdmitter(repo, accounts, stager, strg, tasks, "thumbs")

	out, err := svc.AdmitUpload(context.Background(), admitInput())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if out.ID != 42 || out.ProcessingKey != "key-1" {
		t.Errorf("unexpected output %+v", out)
	}
	if repo.Admitted.Status != model.VideoStatusPending {
		t.Errorf("new record should be pending, got %q", repo.Admitted.Status)
	}
	if repo.Admitted.OriginalFilename != "clip.mp4" {
		t.Errorf("unexpected original filename %q", repo.Admitted.OriginalFilename)
	}
	if repo.Admitted.ThumbnailURL != PlaceholderThumbnailURL {
		t.Errorf("record should carry the placeholder thumbnail, got %q", repo.Admitted.ThumbnailURL)
	}
	if len(tasks.EnqueuedIDs) != 1 || tasks.EnqueuedIDs[0] != 42 {
		t.Errorf("expected task for video 42, got %v", tasks.EnqueuedIDs)
	}
	if accounts.ReleaseCalled != 0 {
		t.Error("no quota release on the happy path")
	}
}

func TestAdmitUpload_ClientThumbnail(t *testing.T) {
	repo, accounts, stager, strg, tasks := admitFixtures()
	svc := NewUploadAdmitter(repo, accounts, stager, strg, tasks, "thumbs")

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}

	in := admitInput()
	in.Thumbnail = &port.ThumbnailUpload{
		Filename:    "cover.png",
		ContentType: "image/png",
		Size:        int64(buf.Len()),
		Reader:      &buf,
	}
	if _, err := svc.AdmitUpload(context.Background(), in); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if repo.Admitted.ThumbnailURL == PlaceholderThumbnailURL {
		t.Error("a valid client thumbnail should replace the placeholder")
	}
	if strg.SavedBucket != "thumbs" {
		t.Errorf("thumbnail saved to wrong bucket %q", strg.SavedBucket)
	}
	if !strings.HasSuffix(strg.SavedKey, "_cover.png") {
		t.Errorf("unexpected thumbnail key %q", strg.SavedKey)
	}
}

func TestAdmitUpload_BrokenThumbnailKeepsPlaceholder(t *testing.T) {
	repo, accounts, stager, strg, tasks := admitFixtures()
	svc := NewUploadAdmitter(repo, accounts, stager, strg, tasks, "thumbs")

	in := admitInput()
	in.Thumbnail = &port.ThumbnailUpload{
		Filename:    "cover.png",
		ContentType: "image/png",
		Size:        3,
		Reader:      strings.NewReader("not an image"),
	}
	out, err := svc.AdmitUpload(context.Background(), in)
	if err != nil {
		t.Fatalf("a broken thumbnail must not fail the upload, got %v", err)
	}
	if out.ID != 42 {
		t.Errorf("unexpected output %+v", out)
	}
	if repo.Admitted.ThumbnailURL != PlaceholderThumbnailURL {
		t.Errorf("placeholder should be kept, got %q", repo.Admitted.ThumbnailURL)
	}
}
