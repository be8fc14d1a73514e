package checkpoint

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkpointSaves = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "factoryscout_checkpoint_saves_total",
			Help: "Total number of successful checkpoint saves",
		},
	)

	checkpointSaveErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "factoryscout_checkpoint_save_errors_total",
			Help: "Total number of failed checkpoint saves",
		},
	)

	checkpointLoadFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "factoryscout_checkpoint_load_failures_total",
			Help: "Total number of unreadable checkpoints discarded on load",
		},
	)

	checkpointSaveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "factoryscout_checkpoint_save_duration_seconds",
			Help:    "Duration of checkpoint saves",
			Buckets: prometheus.DefBuckets,
		},
	)

	checkpointSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "factoryscout_checkpoint_size_bytes",
			Help: "Size of the last saved checkpoint in bytes",
		},
	)
)

func checkpointSaveLog(duration time.Duration, size int) {
	checkpointSaves.Inc()
	checkpointSaveDuration.Observe(duration.Seconds())
	checkpointSize.Set(float64(size))
}

func checkpointSaveErrorsInc() {
	checkpointSaveErrors.Inc()
}

func checkpointLoadFailuresInc() {
	checkpointLoadFailures.Inc()
}
