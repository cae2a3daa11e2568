package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"jobsearch/internal/search"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

const healthCheckTimeout = 2 * time.Second

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	status := http.StatusOK

	if len(s.opts.Checks) > 0 {
		resp.Checks = make(map[string]string, len(s.opts.Checks))
	}
	for name, check := range s.opts.Checks {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		err := check(ctx)
		cancel()

		if err != nil {
			s.logger.Warn("health check failed", zap.String("check", name), zap.Error(err))
			resp.Checks[name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	s.sendJSON(w, status, resp)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := search.ParamsFromQuery(r.URL.Query())

	page, err := s.service.Search(r.Context(), params)
	if err != nil {
		s.logger.Error("search failed",
			zap.String("query", r.URL.RawQuery),
			zap.Error(err),
		)
		s.sendJSON(w, http.StatusInternalServerError, errorResponse{Error: "search failed"})
		return
	}

	s.sendJSON(w, http.StatusOK, page)
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}
