package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/creatorly/videos-ms-go/internal/port"
)

func GetStatusHandler(svc port.ProcessingStatusGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		if key == "" {
			WriteError(w, http.StatusBadRequest, "processing key is required", nil)
			return
		}

		out := svc.GetProcessingStatus(r.Context(), key)

		RespondJSON(w, http.StatusOK, out)
		log.Printf("✅  Returned status %q for processing key %s", out.Status, key)
	}
}
