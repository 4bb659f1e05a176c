package staging

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStage_WritesFileUnderFreshKey(t *testing.T) {
	s, err := NewStager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	staged, err := s.Stage(context.Background(), "my clip.mp4", strings.NewReader("video bytes"))
	if err != nil {
		t.Fatalf("Stage() returned unexpected error: %v", err)
	}
	if staged.Key == "" {
		t.Error("expected a fresh key")
	}
	if filepath.Base(staged.FilePath) != "my_clip.mp4" {
		t.Errorf("spaces should be sanitised, got %q", staged.FilePath)
	}
	data, err := os.ReadFile(staged.FilePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "video bytes" {
		t.Errorf("unexpected file content %q", data)
	}
	if s.FilePath(staged.Key, "my clip.mp4") != staged.FilePath {
		t.Error("FilePath should rebuild the staged path")
	}
	if !s.Exists(staged.Key) {
		t.Error("Exists should see the staged dir")
	}
}

func TestStage_UniqueKeys(t *testing.T) {
	s, err := NewStager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	a, err := s.Stage(context.Background(), "clip.mp4", strings.NewReader("a"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Stage(context.Background(), "clip.mp4", strings.NewReader("b"))
	if err != nil {
		t.Fatal(err)
	}
	if a.Key == b.Key {
		t.Error("two uploads must never share a key")
	}
}

func TestStage_PathTraversalStripped(t *testing.T) {
	root := t.TempDir()
	s, err := NewStager(root)
	if err != nil {
		t.Fatal(err)
	}

	staged, err := s.Stage(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}
	rel, err := filepath.Rel(root, staged.FilePath)
	if err != nil || strings.HasPrefix(rel, "..") {
		t.Errorf("staged file escaped the root: %q", staged.FilePath)
	}
	if filepath.Base(staged.FilePath) != "passwd" {
		t.Errorf("expected bare filename, got %q", staged.FilePath)
	}
}

func TestRemove(t *testing.T) {
	s, err := NewStager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	staged, err := s.Stage(context.Background(), "clip.mp4", strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Remove(staged.Key); err != nil {
		t.Fatalf("Remove() returned unexpected error: %v", err)
	}
	if s.Exists(staged.Key) {
		t.Error("dir should be gone")
	}
	// removing again is a no-op
	if err := s.Remove(staged.Key); err != nil {
		t.Errorf("second Remove() should be a no-op, got %v", err)
	}
	if err := s.Remove(""); err != nil {
		t.Errorf("empty key should be a no-op, got %v", err)
	}
}
