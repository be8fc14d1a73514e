package discovery

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chunksProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "factoryscout_discovery_chunks_total",
			Help: "Total number of block chunks scanned",
		},
	)

	logsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "factoryscout_discovery_logs_total",
			Help: "Total number of factory logs processed",
		},
	)

	factoriesDiscovered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "factoryscout_discovery_factories_total",
			Help: "Total number of factories discovered by kind",
		},
		[]string{"kind"},
	)

	ammsCounted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "factoryscout_discovery_amms_total",
			Help: "Total number of AMM creations attributed to known factories",
		},
	)

	chunkDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "factoryscout_discovery_chunk_duration_seconds",
			Help:    "Time taken to scan and checkpoint a block chunk",
			Buckets: prometheus.DefBuckets,
		},
	)

	checkpointBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "factoryscout_discovery_checkpoint_block",
			Help: "First block not yet scanned according to the last saved checkpoint",
		},
	)

	headBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "factoryscout_discovery_head_block",
			Help: "Highest block the ledger source allows scanning to",
		},
	)

	rangeSplits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "factoryscout_discovery_range_splits_total",
			Help: "Total number of log queries split because the node returned too many results",
		},
	)
)

func chunkLog(logs, amms int, duration time.Duration) {
	chunksProcessed.Inc()
	logsProcessed.Add(float64(logs))
	ammsCounted.Add(float64(amms))
	chunkDuration.Observe(duration.Seconds())
}

func factoryDiscoveredInc(kind string) {
	factoriesDiscovered.WithLabelValues(kind).Inc()
}

func checkpointBlockSet(block uint64) {
	checkpointBlock.Set(float64(block))
}

func headBlockSet(block uint64) {
	headBlock.Set(float64(block))
}

func rangeSplitInc() {
	rangeSplits.Inc()
}
