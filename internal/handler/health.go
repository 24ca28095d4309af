package handler

import (
	"net/http"

	"github.com/gobishoftu/site/backend/spec"
)

type healthResponse struct {
	Status string `json:"status"`
	Mode   string `json:"mode"`
}

// getHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok","mode":...} when the server is running.
func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Mode: s.opts.Mode})
}

// getOpenAPI handles GET /openapi.yaml.
func (s *Server) getOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
