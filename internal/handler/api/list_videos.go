package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/creatorly/videos-ms-go/internal/model"
	"github.com/creatorly/videos-ms-go/internal/port"
)

func ListVideosHandler(svc port.VideoLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := port.ListVideosInput{}

		if kind := r.URL.Query().Get("video_type"); kind != "" {
			if !model.VideoKind(kind).IsValid() {
				WriteError(w, http.StatusBadRequest, fmt.Sprintf("unknown video type %q", kind), nil)
				return
			}
			in.Kind = model.VideoKind(kind)
		}
		if status := r.URL.Query().Get("status"); status != "" {
			switch model.VideoStatus(status) {
			case model.VideoStatusPending, model.VideoStatusApproved, model.VideoStatusFailed:
				in.Status = model.VideoStatus(status)
			default:
				WriteError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", status), nil)
				return
			}
		}

		videos, err := svc.ListVideos(r.Context(), in)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "could not list videos", err)
			return
		}
		if videos == nil {
			videos = []*model.Video{}
		}

		RespondJSON(w, http.StatusOK, videos)
		log.Printf("✅  Returned %d videos", len(videos))
	}
}
