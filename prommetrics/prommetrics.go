// Package prommetrics exports nvstore operation metrics to Prometheus.
//
//	c := prommetrics.New("swtpm")
//	prometheus.MustRegister(c)
//	dir, _ := nvstore.Prepare(root, nvstore.WithMetricsCollector(c))
package prommetrics

import (
	"errors"
	"time"

	"github.com/hupe1980/nvstore"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess = "success"
	statusMiss    = "miss"
	statusError   = "error"
)

// Collector implements nvstore.MetricsCollector and prometheus.Collector.
type Collector struct {
	opLatency *prometheus.HistogramVec
	ops       *prometheus.CounterVec
	bytes     *prometheus.CounterVec
}

var (
	_ nvstore.MetricsCollector = (*Collector)(nil)
	_ prometheus.Collector     = (*Collector)(nil)
)

// New creates a Collector. namespace prefixes every metric name and may be empty.
func New(namespace string) *Collector {
	return &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "nvstore",
			Name:      "operation_duration_seconds",
			Help:      "Latency of record operations, including fsync.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"op", "status"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "nvstore",
			Name:      "operations_total",
			Help:      "Record operations by outcome.",
		}, []string{"op", "status"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "nvstore",
			Name:      "bytes_total",
			Help:      "Bytes read and written by successful operations.",
		}, []string{"op"}),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.opLatency.Describe(ch)
	c.ops.Describe(ch)
	c.bytes.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.opLatency.Collect(ch)
	c.ops.Collect(ch)
	c.bytes.Collect(ch)
}

// RecordLoad implements nvstore.MetricsCollector.
func (c *Collector) RecordLoad(d time.Duration, n int, err error) {
	c.observe("load", d, n, status(err))
}

// RecordStore implements nvstore.MetricsCollector.
func (c *Collector) RecordStore(d time.Duration, n int, err error) {
	c.observe("store", d, n, status(err))
}

// RecordDelete implements nvstore.MetricsCollector.
func (c *Collector) RecordDelete(d time.Duration, err error) {
	c.observe("delete", d, 0, status(err))
}

func (c *Collector) observe(op string, d time.Duration, n int, st string) {
	c.opLatency.WithLabelValues(op, st).Observe(d.Seconds())
	c.ops.WithLabelValues(op, st).Inc()
	if st == statusSuccess && n > 0 {
		c.bytes.WithLabelValues(op).Add(float64(n))
	}
}

func status(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case errors.Is(err, nvstore.ErrRetry):
		return statusMiss
	default:
		return statusError
	}
}
