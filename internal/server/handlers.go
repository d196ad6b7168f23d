package server

import (
	"encoding/json"
	"net/http"
	"time"
)

var startTime = time.Now()

// handleHealth reports liveness plus a database ping so orchestration can
// tell a wedged store from a healthy process.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK

	if s.db != nil {
		if err := s.db.Conn().Ping(); err != nil {
			dbStatus = "unreachable"
			status = "degraded"
			code = http.StatusServiceUnavailable
			s.log.Warn().Err(err).Msg("Health check database ping failed")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":         status,
		"database":       dbStatus,
		"uptime_seconds": int(time.Since(startTime).Seconds()),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}
