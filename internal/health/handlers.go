package health

import (
	"context"
	"net/http"

	"github.com/noah-isme/widget-basket/internal/common"
)

// Checker represents a dependency that can be probed for readiness.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckFunc adapts a function to Checker.
type CheckFunc struct {
	Label string
	Fn    func(ctx context.Context) error
}

// Name implements Checker.
func (c CheckFunc) Name() string { return c.Label }

// Check implements Checker.
func (c CheckFunc) Check(ctx context.Context) error { return c.Fn(ctx) }

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Checkers []Checker
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready runs every checker and reports 503 if any of them fails.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if len(h.Checkers) == 0 {
		common.JSONError(w, http.StatusServiceUnavailable, "NOT_READY", "no readiness checks configured", nil)
		return
	}
	status := make(map[string]string, len(h.Checkers))
	code := http.StatusOK
	for _, c := range h.Checkers {
		if err := c.Check(r.Context()); err != nil {
			status[c.Name()] = err.Error()
			code = http.StatusServiceUnavailable
			continue
		}
		status[c.Name()] = "ok"
	}
	common.JSON(w, code, status)
}
