package transcoder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/creatorly/videos-ms-go/internal/port"
)

const (
	// submitTimeout bounds the initial /process call; the remote service
	// answers once it has accepted the job.
	submitTimeout = 600 * time.Second
	// pollTimeout keeps individual status checks short; the orchestrator's
	// retry loop absorbs individual failures.
	pollTimeout = 5 * time.Second
)

// Client wraps the remote transcoding service's HTTP interface.
type Client struct {
	baseURL      string
	submitClient *http.Client
	pollClient   *http.Client
}

// compile-time check: *Client must satisfy port.TranscodeClient
var _ port.TranscodeClient = (*Client)(nil)

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		submitClient: &http.Client{Timeout: submitTimeout},
		pollClient:   &http.Client{Timeout: pollTimeout},
	}
}

type processRequest struct {
	VideoID       string `json:"video_id"`
	TargetFormat  string `json:"target_format"`
	SkipThumbnail bool   `json:"skip_thumbnail"`
	TaskID        string `json:"task_id"`
}

func (c *Client) Submit(ctx context.Context, in port.SubmitInput) error {
	body, err := json.Marshal(processRequest{
		VideoID:       in.StagedPath,
		TargetFormat:  in.TargetFormat,
		SkipThumbnail: in.SkipThumbnail,
		TaskID:        in.TaskID,
	})
	if err != nil {
		return fmt.Errorf("marshal process request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/process", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.submitClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit to transcoder: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("transcoder rejected submission: %s", resp.Status)
	}
	return nil
}

type statusResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Progress int    `json:"progress"`
}

func (c *Client) Poll(ctx context.Context, taskID string) (port.TranscodeStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status/"+taskID, nil)
	if err != nil {
		return port.TranscodeStatus{}, err
	}

	resp, err := c.pollClient.Do(req)
	if err != nil {
		return port.TranscodeStatus{}, fmt.Errorf("poll transcoder: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// The remote side registers tasks asynchronously: 404 is transient.
	if resp.StatusCode == http.StatusNotFound {
		return port.TranscodeStatus{State: port.StateNotFound}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return port.TranscodeStatus{}, fmt.Errorf("unexpected status response: %s", resp.Status)
	}

	var sr statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return port.TranscodeStatus{}, fmt.Errorf("decode status response: %w", err)
	}

	switch sr.Status {
	case "completed":
		return port.TranscodeStatus{State: port.StateCompleted, Progress: sr.Progress}, nil
	case "error":
		return port.TranscodeStatus{State: port.StateError, Message: sr.Message}, nil
	default:
		// "pending", "starting", "processing"… anything non-terminal.
		return port.TranscodeStatus{State: port.StatePending, Message: sr.Message, Progress: sr.Progress}, nil
	}
}
