package web

import (
	"net/http"

	"github.com/peterkuimelis/cardpower/internal/config"
)

// handleWeights serves the active weight table as JSON, or as a weights
// YAML file with ?format=yaml.
func (s *Server) handleWeights(w http.ResponseWriter, r *http.Request) {
	_, scorer := s.snapshot()
	weights := scorer.Weights()

	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, weights)
	case "yaml":
		w.Header().Set("Content-Type", "application/yaml")
		w.Header().Set("Content-Disposition", `attachment; filename="weights.yaml"`)
		if err := config.WriteWeights(w, weights); err != nil {
			http.Error(w, "could not encode weights", http.StatusInternalServerError)
		}
	default:
		writeError(w, http.StatusBadRequest, "format must be json or yaml")
	}
}
