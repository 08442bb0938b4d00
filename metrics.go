package nvstore

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// prommetrics package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordLoad is called after each load. bytes is the record size on
	// success. A missing record (ErrRetry) is passed through as err.
	RecordLoad(duration time.Duration, bytes int, err error)

	// RecordStore is called after each store with the blob size.
	RecordStore(duration time.Duration, bytes int, err error)

	// RecordDelete is called after each delete.
	RecordDelete(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(time.Duration, int, error)  {}
func (NoopMetricsCollector) RecordStore(time.Duration, int, error) {}
func (NoopMetricsCollector) RecordDelete(time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and tests without external dependencies.
type BasicMetricsCollector struct {
	LoadCount       atomic.Int64
	LoadMisses      atomic.Int64
	LoadErrors      atomic.Int64
	LoadBytes       atomic.Int64
	LoadTotalNanos  atomic.Int64
	StoreCount      atomic.Int64
	StoreErrors     atomic.Int64
	StoreBytes      atomic.Int64
	StoreTotalNanos atomic.Int64
	DeleteCount     atomic.Int64
	DeleteErrors    atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(duration time.Duration, bytes int, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	switch {
	case isRetry(err):
		b.LoadMisses.Add(1)
	case err != nil:
		b.LoadErrors.Add(1)
	default:
		b.LoadBytes.Add(int64(bytes))
	}
}

// RecordStore implements MetricsCollector.
func (b *BasicMetricsCollector) RecordStore(duration time.Duration, bytes int, err error) {
	b.StoreCount.Add(1)
	b.StoreTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.StoreErrors.Add(1)
		return
	}
	b.StoreBytes.Add(int64(bytes))
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(_ time.Duration, err error) {
	b.DeleteCount.Add(1)
	if err != nil {
		b.DeleteErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:     b.LoadCount.Load(),
		LoadMisses:    b.LoadMisses.Load(),
		LoadErrors:    b.LoadErrors.Load(),
		LoadBytes:     b.LoadBytes.Load(),
		LoadAvgNanos:  avg(b.LoadTotalNanos.Load(), b.LoadCount.Load()),
		StoreCount:    b.StoreCount.Load(),
		StoreErrors:   b.StoreErrors.Load(),
		StoreBytes:    b.StoreBytes.Load(),
		StoreAvgNanos: avg(b.StoreTotalNanos.Load(), b.StoreCount.Load()),
		DeleteCount:   b.DeleteCount.Load(),
		DeleteErrors:  b.DeleteErrors.Load(),
	}
}

// BasicMetricsStats is a point-in-time snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	LoadCount     int64
	LoadMisses    int64
	LoadErrors    int64
	LoadBytes     int64
	LoadAvgNanos  int64
	StoreCount    int64
	StoreErrors   int64
	StoreBytes    int64
	StoreAvgNanos int64
	DeleteCount   int64
	DeleteErrors  int64
}

func avg(total, n int64) int64 {
	if n == 0 {
		return 0
	}
	return total / n
}
