package api

import (
	"net/http"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/capture"
)

// CheckHealth reports whether a counter source is configured and which table it reads.
// GET /api/v1/health
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONData(w, HealthResponse{
		Healthy: h.source != nil,
		Source:  describe(h.source),
		Table:   h.cfg.General.Table,
	})
}

func describe(source capture.Source) string {
	if source == nil {
		return ""
	}
	return source.Describe()
}
