package health

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// LiveHandler only reports that the process is serving requests.
func (c *Checker) LiveHandler(w http.ResponseWriter, r *http.Request) {
	c.write(w, r, http.StatusOK, Response{Status: StatusHealthy, Version: c.version})
}

// ReadyHandler runs the dependency checks and answers 503 if any fails.
func (c *Checker) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	status := c.Check(r.Context())

	code := http.StatusOK
	if status.Status != StatusHealthy {
		code = http.StatusServiceUnavailable
	}

	c.write(w, r, code, status)
}

func (c *Checker) write(w http.ResponseWriter, r *http.Request, code int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		c.logger.WarnContext(r.Context(), "failed to write health response", slog.String("error", err.Error()))
	}
}
