package handler

import (
	"net/http"

	"github.com/goalfeed-app/goalfeed/internal/api/respond"
)

// Poll runs one poll cycle. Triggered by an external cron (e.g. every
// minute); guarded by CRON_SECRET so outsiders cannot burn API quota.
// @Summary Run one poll cycle
// @Tags poll
// @Produce json
// @Param X-Cron-Secret header string false "Cron secret"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} respond.ErrorResponse
// @Router /api/poll [post]
func (h *Handler) Poll(w http.ResponseWriter, r *http.Request) {
	secret := r.Header.Get("X-Cron-Secret")
	if secret == "" {
		secret = r.URL.Query().Get("secret")
	}
	if h.cfg.CronSecret != "" && secret != h.cfg.CronSecret {
		respond.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	summary, err := h.poller.Run(r.Context())
	if err != nil {
		h.logger.Error("poll cycle failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "POLL_FAILED", err.Error())
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":         true,
		"matched":    summary.Matched,
		"dispatched": summary.Dispatched,
		"expired":    summary.Expired,
	})
}
