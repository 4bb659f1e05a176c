package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/creatorly/videos-ms-go/internal/api_context"
	"github.com/creatorly/videos-ms-go/internal/model"
	"github.com/creatorly/videos-ms-go/internal/port"
	"github.com/creatorly/videos-ms-go/internal/usecase/video"
	"github.com/creatorly/videos-ms-go/internal/validation"
)

// maxUploadMemory bounds the in-memory part of multipart parsing; bigger
// parts spill to temp files.
const maxUploadMemory = 32 << 20

type UploadVideoRequest struct {
	Title     string `json:"title" validate:"required,max=255"`
	VideoType string `json:"video_type" validate:"required,oneof=home flash"`
}

func UploadVideoHandler(svc port.UploadAdmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := api_context.AuthAccountIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "account identity is required", nil)
			return
		}

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid multipart payload", err)
			return
		}

		req := UploadVideoRequest{
			Title:     r.FormValue("title"),
			VideoType: r.FormValue("video_type"),
		}
		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", err)
				return
			}
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			log.Printf("❌  Validation failed: %s", errsJSON)
			return
		}

		file, fileHeader, err := r.FormFile("file")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "video file is required", err)
			return
		}
		defer func() { _ = file.Close() }()

		in := port.AdmitUploadInput{
			AccountID: accountID,
			Kind:      model.VideoKind(req.VideoType),
			Title:     req.Title,
			Filename:  fileHeader.Filename,
			File:      file,
		}

		if thumb, thumbHeader, err := r.FormFile("thumbnail"); err == nil {
			defer func() { _ = thumb.Close() }()
			in.Thumbnail = &port.ThumbnailUpload{
				Filename:    thumbHeader.Filename,
				ContentType: thumbHeader.Header.Get("Content-Type"),
				Size:        thumbHeader.Size,
				Reader:      thumb,
			}
		}

		out, err := svc.AdmitUpload(r.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, video.ErrQuotaExceeded):
				WriteError(w, http.StatusForbidden, "upload quota exceeded", nil)
			case errors.Is(err, video.ErrStorageUnavailable):
				WriteError(w, http.StatusServiceUnavailable, "could not store the uploaded file", err)
			default:
				WriteError(w, http.StatusInternalServerError, "could not admit upload", err)
			}
			return
		}

		RespondJSON(w, http.StatusAccepted, out)
		log.Printf("✅  Admitted video #%d for processing (key %s)", out.ID, out.ProcessingKey)
	}
}
