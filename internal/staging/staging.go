package staging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/creatorly/videos-ms-go/internal/port"
	msuuid "github.com/creatorly/videos-ms-go/internal/uuid"
)

// Stager persists raw uploads under root/<key>/<filename>, where key is a
// fresh UUID doubling as the processing key.
type Stager struct {
	root string
}

// compile-time check: *Stager must satisfy port.Stager
var _ port.Stager = (*Stager)(nil)

func NewStager(root string) (*Stager, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create staging root %q: %w", root, err)
	}
	return &Stager{root: root}, nil
}

func (s *Stager) Stage(ctx context.Context, filename string, r io.Reader) (port.StagedUpload, error) {
	key := msuuid.NewUUID().String()
	dir := filepath.Join(s.root, key)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return port.StagedUpload{}, fmt.Errorf("create staging dir %q: %w", dir, err)
	}

	path := filepath.Join(dir, sanitise(filename))
	f, err := os.Create(path)
	if err != nil {
		_ = os.RemoveAll(dir)
		return port.StagedUpload{}, fmt.Errorf("create staged file %q: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.RemoveAll(dir)
		return port.StagedUpload{}, fmt.Errorf("write staged file %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.RemoveAll(dir)
		return port.StagedUpload{}, fmt.Errorf("close staged file %q: %w", path, err)
	}

	return port.StagedUpload{Key: key, Dir: dir, FilePath: path}, nil
}

func (s *Stager) FilePath(key, filename string) string {
	return filepath.Join(s.root, key, sanitise(filename))
}

func (s *Stager) Exists(key string) bool {
	info, err := os.Stat(filepath.Join(s.root, key))
	return err == nil && info.IsDir()
}

func (s *Stager) Remove(key string) error {
	if key == "" {
		return nil
	}
	return os.RemoveAll(filepath.Join(s.root, key))
}

// sanitise strips any path components and spaces from an uploaded filename.
func sanitise(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	return strings.ReplaceAll(name, " ", "_")
}
