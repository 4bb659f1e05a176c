package video

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/creatorly/videos-ms-go/internal/mock"
)

func TestRequeuePending_NothingStuck(t *testing.T) {
	repo := &mock.MockVideoRepo{}
	tasks := &mock.MockDispatcher{}
	svc := NewPendingRequeuer(repo, &mock.MockAccountRepo{}, &mock.MockStager{}, tasks)

	if err := svc.RequeuePending(context.Background()); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if tasks.Called != 0 {
		t.Error("nothing to requeue")
	}
}

func TestRequeuePending_CutoffApplied(t *testing.T) {
	repo := &mock.MockVideoRepo{}
	svc := NewPendingRequeuer(repo, &mock.MockAccountRepo{}, &mock.MockStager{}, &mock.MockDispatcher{})

	before := time.Now().UTC().Add(-PendingRequeueAfter)
	if err := svc.RequeuePending(context.Background()); err != nil {
		t.Fatal(err)
	}
	after := time.Now().UTC().Add(-PendingRequeueAfter)

	if repo.PendingBefore.Before(before) || repo.PendingBefore.After(after) {
		t.Errorf("cutoff %v not within [%v, %v]", repo.PendingBefore, before, after)
	}
}

func TestRequeuePending_ReenqueuesWhenStagedSourceExists(t *testing.T) {
	repo := &mock.MockVideoRepo{VideoRecord: pendingVideo(), ListPendingOut: []int64{42}}
	stager := &mock.MockStager{ExistsOut: true}
	tasks := &mock.MockDispatcher{}
	svc := NewPendingRequeuer(repo, &mock.MockAccountRepo{}, stager, tasks)

	if err := svc.RequeuePending(context.Background()); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(tasks.EnqueuedIDs) != 1 || tasks.EnqueuedIDs[0] != 42 {
		t.Errorf("expected task for video 42, got %v", tasks.EnqueuedIDs)
	}
	if repo.MarkFailedCalled != 0 {
		t.Error("a requeueable video must not be failed")
	}
}

func TestRequeuePending_RollsBackWhenStagedSourceGone(t *testing.T) {
	repo := &mock.MockVideoRepo{VideoRecord: pendingVideo(), ListPendingOut: []int64{42}, MarkFailedOut: true}
	accounts := &mock.MockAccountRepo{}
	stager := &mock.MockStager{ExistsOut: false}
	tasks := &mock.MockDispatcher{}
	svc := NewPendingRequeuer(repo, accounts, stager, tasks)

	if err := svc.RequeuePending(context.Background()); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if tasks.Called != 0 {
		t.Error("a video without its source must not be requeued")
	}
	if repo.MarkFailedCalled != 1 || accounts.ReleaseCalled != 1 {
		t.Error("the admission should be undone")
	}
}

func TestRequeuePending_ListError(t *testing.T) {
	repo := &mock.MockVideoRepo{ListPendingErr: errors.New("db down")}
	svc := NewPendingRequeuer(repo, &mock.MockAccountRepo{}, &mock.MockStager{}, &mock.MockDispatcher{})

	if err := svc.RequeuePending(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
