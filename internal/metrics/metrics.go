package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Go runtime and process metrics come from the default registry's collectors;
// this package only adds what is specific to FactoryScout.
var (
	dbQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "factoryscout_db_queries_total",
		Help: "Total number of registry database operations",
	}, []string{"db", "operation"})

	dbQueryTime = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "factoryscout_db_query_duration_seconds",
		Help:    "Duration of registry database operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"db", "operation"})

	dbErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "factoryscout_db_errors_total",
		Help: "Total number of failed registry database operations",
	}, []string{"db", "operation"})

	runs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "factoryscout_runs_total",
		Help: "Total number of discovery runs by outcome",
	}, []string{"outcome"})

	reportedFactories = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "factoryscout_reported_factories",
		Help: "Number of factories at or above the AMM threshold after the last successful run",
	})

	lastRunTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "factoryscout_last_successful_run_timestamp_seconds",
		Help: "Unix time of the last successful discovery run",
	})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "factoryscout_errors_total",
		Help: "Total number of errors by component and severity",
	}, []string{"component", "severity"})

	componentHealth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "factoryscout_component_health",
		Help: "Component health status (1=healthy, 0=unhealthy)",
	}, []string{"component"})

	uptime = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "factoryscout_uptime_seconds",
		Help: "Time since the process started",
	})

	startTime = time.Now()
)

func DBQueryInc(db string, operation string) {
	dbQueries.WithLabelValues(db, operation).Inc()
}

func DBQueryDuration(db string, operation string, duration time.Duration) {
	dbQueryTime.WithLabelValues(db, operation).Observe(duration.Seconds())
}

func DBErrorsInc(db string, operation string) {
	dbErrors.WithLabelValues(db, operation).Inc()
}

// RunFinished records the outcome of one discovery run and, on success, the size of its result.
func RunFinished(err error, reported int) {
	if err != nil {
		runs.WithLabelValues("error").Inc()
		return
	}

	runs.WithLabelValues("success").Inc()
	reportedFactories.Set(float64(reported))
	lastRunTimestamp.SetToCurrentTime()
}

func ErrorsInc(component string, severity string) {
	errorsTotal.WithLabelValues(component, severity).Inc()
}

func ComponentHealthSet(component string, healthy bool) {
	var v float64
	if healthy {
		v = 1
	}
	componentHealth.WithLabelValues(component).Set(v)
}

func updateUptime() {
	uptime.Set(time.Since(startTime).Seconds())
}
