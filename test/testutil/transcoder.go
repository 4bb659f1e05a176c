package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
)

// FakeTranscoder emulates the remote transcoding service over HTTP. It shares
// the staging directory with the code under test: on submission it drops the
// rendition files next to the staged source, exactly like the real service.
type FakeTranscoder struct {
	// Renditions are the ladder suffixes "produced" for every submission.
	Renditions []string
	// PendingPolls is how many status checks answer "pending" before the
	// terminal answer.
	PendingPolls int
	// FailWith, when non-empty, makes every task end in an error status with
	// this message instead of completing.
	FailWith string

	srv   *httptest.Server
	mu    sync.Mutex
	tasks map[string]*fakeTask
}

type fakeTask struct {
	polls         int
	skipThumbnail bool
}

func NewFakeTranscoder() *FakeTranscoder {
	ft := &FakeTranscoder{
		Renditions: []string{"480p", "720p", "1080p"},
		tasks:      make(map[string]*fakeTask),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/process", ft.handleProcess)
	mux.HandleFunc("/status/", ft.handleStatus)
	ft.srv = httptest.NewServer(mux)
	return ft
}

func (ft *FakeTranscoder) URL() string { return ft.srv.URL }

func (ft *FakeTranscoder) Close() { ft.srv.Close() }

func (ft *FakeTranscoder) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VideoID       string `json:"video_id"`
		TargetFormat  string `json:"target_format"`
		SkipThumbnail bool   `json:"skip_thumbnail"`
		TaskID        string `json:"task_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if ft.FailWith == "" {
		for _, suffix := range ft.Renditions {
			if err := os.WriteFile(req.VideoID+"_"+suffix+".mp4", []byte("rendition "+suffix), 0o644); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}
		if !req.SkipThumbnail {
			if err := os.WriteFile(req.VideoID+".jpg", []byte("thumbnail"), 0o644); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}
	}

	ft.mu.Lock()
	ft.tasks[req.TaskID] = &fakeTask{skipThumbnail: req.SkipThumbnail}
	ft.mu.Unlock()

	w.WriteHeader(http.StatusAccepted)
}

func (ft *FakeTranscoder) handleStatus(w http.ResponseWriter, r *http.Request) {
	taskID := strings.TrimPrefix(r.URL.Path, "/status/")

	ft.mu.Lock()
	task, ok := ft.tasks[taskID]
	if ok {
		task.polls++
	}
	ft.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	resp := map[string]any{"status": "pending", "progress": 50}
	if task.polls > ft.PendingPolls {
		if ft.FailWith != "" {
			resp = map[string]any{"status": "error", "message": ft.FailWith}
		} else {
			resp = map[string]any{"status": "completed", "progress": 100}
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
