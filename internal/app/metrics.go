package app

import (
	client_prometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/ton-connect/ntpclock/internal"
)

var (
	HealthMetric = client_prometheus.NewGauge(client_prometheus.GaugeOpts{
		Name: "ntpclock_health_status",
		Help: "Health status (1 = synchronized, 0 = not synchronized)",
	})

	ReadyMetric = client_prometheus.NewGauge(client_prometheus.GaugeOpts{
		Name: "ntpclock_ready_status",
		Help: "Ready status (1 = ready, 0 = not ready)",
	})

	VersionMetric = client_prometheus.NewGaugeVec(client_prometheus.GaugeOpts{
		Name: "ntpclock_version_info",
		Help: "Version information",
	}, []string{"version", "time_source"})
)

// InitMetrics registers all Prometheus metrics and sets version info
func InitMetrics(timeSource string) {
	client_prometheus.MustRegister(HealthMetric)
	client_prometheus.MustRegister(ReadyMetric)
	client_prometheus.MustRegister(VersionMetric)
	VersionMetric.WithLabelValues(internal.VersionRevision, timeSource).Set(1)
}
