package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/creatorly/videos-ms-go/internal/api_context"
	"github.com/creatorly/videos-ms-go/internal/port"
	"github.com/creatorly/videos-ms-go/internal/usecase/video"
)

func RetryVideoHandler(svc port.UploadRetrier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videoID, ok := api_context.VideoIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "video ID is required", nil)
			return
		}
		accountID, ok := api_context.AuthAccountIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "account identity is required", nil)
			return
		}

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid multipart payload", err)
			return
		}
		file, fileHeader, err := r.FormFile("file")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "video file is required", err)
			return
		}
		defer func() { _ = file.Close() }()

		out, err := svc.RetryUpload(r.Context(), port.RetryUploadInput{
			VideoID:   videoID,
			AccountID: accountID,
			Filename:  fileHeader.Filename,
			File:      file,
		})
		if err != nil {
			switch {
			case errors.Is(err, video.ErrVideoNotFound):
				WriteError(w, http.StatusNotFound, "video not found", nil)
			case errors.Is(err, video.ErrNotOwner):
				WriteError(w, http.StatusForbidden, "you do not own this video", nil)
			case errors.Is(err, video.ErrNotRetryable):
				WriteError(w, http.StatusConflict, "only failed videos can be retried", nil)
			case errors.Is(err, video.ErrQuotaExceeded):
				WriteError(w, http.StatusForbidden, "upload quota exceeded", nil)
			case errors.Is(err, video.ErrStorageUnavailable):
				WriteError(w, http.StatusServiceUnavailable, "could not store the uploaded file", err)
			default:
				WriteError(w, http.StatusInternalServerError, "could not retry upload", err)
			}
			return
		}

		RespondJSON(w, http.StatusAccepted, out)
		log.Printf("✅  Readmitted video #%d for processing (key %s)", out.ID, out.ProcessingKey)
	}
}
