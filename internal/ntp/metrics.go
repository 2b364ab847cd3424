package ntp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	synchronizedMetric = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ntpclock_ntp_synchronized",
		Help: "Whether the clock has been synchronized at least once (1 = yes, 0 = no)",
	})

	clockOffsetMetric = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ntpclock_ntp_clock_offset_seconds",
		Help: "Offset between the NTP server and the local clock from the last successful sync",
	})

	lastSyncMetric = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ntpclock_ntp_last_sync_timestamp_seconds",
		Help: "Unix time of the last successful sync",
	})

	queryFailuresMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ntpclock_ntp_query_failures_total",
		Help: "The total number of failed or invalid NTP queries",
	}, []string{"server"})

	syncRoundFailuresMetric = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ntpclock_ntp_sync_round_failures_total",
		Help: "The total number of sync rounds where no server answered, retries included",
	})

	readFailuresMetric = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ntpclock_time_read_failures_total",
		Help: "The total number of GetCurrentTime calls that returned no valid time",
	})
)
