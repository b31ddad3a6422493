package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK        = "ok"
	outcomeStatus    = "status_error"
	outcomeTransport = "transport_error"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aktivitaeten",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Requests issued against the activities API by operation and outcome.",
	}, []string{"op", "outcome"})
	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "aktivitaeten",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Latency of activities API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration)
}

func observe(op string, start time.Time, err error) {
	outcome := outcomeOK
	switch err.(type) {
	case nil:
	case *StatusError:
		outcome = outcomeStatus
	default:
		outcome = outcomeTransport
	}
	requestsTotal.WithLabelValues(op, outcome).Inc()
	requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
