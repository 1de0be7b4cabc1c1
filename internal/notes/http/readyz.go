package http

import (
	"net/http"

	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/aussiebroadwan/notes/pkg/httpx"
	"github.com/aussiebroadwan/notes/pkg/notesdk"
	"github.com/aussiebroadwan/notes/pkg/slogx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Checks the database connection. Returns 503 while it is unreachable.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	notesdk.ReadyzResponse	"status, version, checks"
//	@Failure		503	{object}	notesdk.ReadyzResponse	"status, version, checks"
//	@Router			/readyz [get].
func ReadyzHandler(version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := notesdk.ReadyzResponse{
			Status:  "ok",
			Version: version,
			Checks:  map[string]string{"database": "ok"},
		}
		status := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			slogx.FromContext(r.Context()).Warn("readiness: database ping failed", "err", err)
			resp.Checks["database"] = "error"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, status, resp)
	}
}
