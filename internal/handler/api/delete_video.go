package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/creatorly/videos-ms-go/internal/api_context"
	"github.com/creatorly/videos-ms-go/internal/port"
	"github.com/creatorly/videos-ms-go/internal/usecase/video"
)

func DeleteVideoHandler(svc port.VideoDeleter) http.HandlerFunc {
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

		if err := svc.DeleteVideo(r.Context(), videoID, accountID); err != nil {
			switch {
			case errors.Is(err, video.ErrVideoNotFound):
				WriteError(w, http.StatusNotFound, "video not found", nil)
			case errors.Is(err, video.ErrNotOwner):
				WriteError(w, http.StatusForbidden, "you do not own this video", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "could not delete video", err)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅  Successfully deleted video #%d", videoID)
	}
}
