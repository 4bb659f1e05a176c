package video

import (
	"context"
	"errors"
	"testing"

	"github.com/creatorly/videos-ms-go/internal/mock"
)

func TestUndoAdmission_Idempotent(t *testing.T) {
	repo := &mock.MockVideoRepo{MarkFailedOut: true}
	accounts := &mock.MockAccountRepo{}
	stager := &mock.MockStager{}
	video := pendingVideo()

	undoAdmission(context.Background(), repo, accounts, stager, video)
	undoAdmission(context.Background(), repo, accounts, stager, video)

	if repo.MarkFailedCalled != 2 {
		t.Errorf("expected 2 MarkFailed calls, got %d", repo.MarkFailedCalled)
	}
	if accounts.ReleaseCalled != 1 {
		t.Errorf("quota must be released exactly once, got %d", accounts.ReleaseCalled)
	}
	if stager.RemoveCalled != 2 {
		t.Errorf("staging removal should run on every rollback, got %d", stager.RemoveCalled)
	}
}

func TestUndoAdmission_MarkFailedErrorStillCleansStaging(t *testing.T) {
	repo := &mock.MockVideoRepo{MarkFailedErr: errors.New("db down")}
	accounts := &mock.MockAccountRepo{}
	stager := &mock.MockStager{}

	undoAdmission(context.Background(), repo, accounts, stager, pendingVideo())

	if accounts.ReleaseCalled != 0 {
		t.Error("no transition, no quota release")
	}
	if stager.RemoveCalled != 1 {
		t.Error("staging removal must run even when the status update fails")
	}
}

func TestUndoAdmission_AlreadyFailed(t *testing.T) {
	// MarkFailedOut=false: the row was already failed by an earlier rollback
	repo := &mock.MockVideoRepo{MarkFailedOut: false}
	accounts := &mock.MockAccountRepo{}
	stager := &mock.MockStager{}

	undoAdmission(context.Background(), repo, accounts, stager, pendingVideo())

	if accounts.ReleaseCalled != 0 {
		t.Error("quota must not be released twice for the same video")
	}
}
