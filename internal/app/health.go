package app

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ton-connect/ntpclock/internal"
)

// HealthChecker reports whether the time source can serve valid readings.
type HealthChecker interface {
	HealthCheck() error
}

// HealthManager tracks whether the clock is synchronized
type HealthManager struct {
	healthy atomic.Bool
}

func NewHealthManager() *HealthManager {
	return &HealthManager{}
}

// UpdateHealthStatus polls checker and updates metrics
func (h *HealthManager) UpdateHealthStatus(checker HealthChecker) {
	healthy := checker.HealthCheck() == nil
	if h.healthy.Swap(healthy) != healthy {
		log.WithField("healthy", healthy).Info("health status changed")
	}

	var status float64
	if healthy {
		status = 1
	}
	HealthMetric.Set(status)
	ReadyMetric.Set(status)
}

// StartHealthMonitoring re-checks every interval until ctx is done.
func (h *HealthManager) StartHealthMonitoring(ctx context.Context, checker HealthChecker, interval time.Duration) {
	h.UpdateHealthStatus(checker)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.UpdateHealthStatus(checker)
		}
	}
}

// HealthHandler serves /health and /ready
func (h *HealthManager) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Build-Commit", internal.VersionRevision)

	if !h.healthy.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		if _, err := fmt.Fprintf(w, `{"status":"unhealthy"}`+"\n"); err != nil {
			log.Errorf("health response write error: %v", err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprintf(w, `{"status":"ok"}`+"\n"); err != nil {
		log.Errorf("health response write error: %v", err)
	}
}

// VersionHandler returns HTTP handler for version endpoint
func VersionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Build-Commit", internal.VersionRevision)

	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprintf(w, `{"version":"%s"}`+"\n", internal.VersionRevision); err != nil {
		log.Errorf("version response write error: %v", err)
	}
}
