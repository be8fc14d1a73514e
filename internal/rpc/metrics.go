package rpc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "factoryscout_rpc_requests_total",
		Help: "Total number of RPC calls by method, counting a retried call once",
	}, []string{"method"})

	requestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "factoryscout_rpc_errors_total",
		Help: "Total number of failed RPC calls by method and error type",
	}, []string{"method", "error_type"})

	retries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "factoryscout_rpc_retries_total",
		Help: "Total number of RPC retry attempts by method",
	}, []string{"method"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "factoryscout_rpc_request_duration_seconds",
		Help:    "Duration of RPC calls including retries and backoff",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"method"})
)

// observeCall records one finished RPC call.
func observeCall(method string, start time.Time, err error) {
	requests.WithLabelValues(method).Inc()
	requestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		requestErrors.WithLabelValues(method, classifyError(err)).Inc()
	}
}

func retryInc(method string) {
	retries.WithLabelValues(method).Inc()
}
