package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Database metrics
var (
	// DBUp reports whether the most recent database ping succeeded
	DBUp = promauto.With(Registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_up",
			Help:      "Whether the most recent database ping succeeded (1=up, 0=down)",
		},
	)

	// DBQueryDuration records database query latency
	DBQueryDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	// DBErrors counts database errors by type
	DBErrors = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_errors_total",
			Help:      "Total number of database errors",
		},
		[]string{"operation", "error_type"},
	)
)

// Pinger is the slice of the store the collector needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DBCollector periodically pings the database and publishes the result.
type DBCollector struct {
	pinger   Pinger
	stopChan chan struct{}
}

// NewDBCollector creates a new database metrics collector
func NewDBCollector(pinger Pinger) *DBCollector {
	return &DBCollector{
		pinger:   pinger,
		stopChan: make(chan struct{}),
	}
}

// Start begins collecting database metrics at the specified interval
func (c *DBCollector) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.collect(ctx)

	for {
		select {
		case <-ticker.C:
			c.collect(ctx)
		case <-c.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop stops the metrics collector
func (c *DBCollector) Stop() {
	close(c.stopChan)
}

func (c *DBCollector) collect(ctx context.Context) {
	if c.pinger == nil {
		return
	}

	if err := c.pinger.Ping(ctx); err != nil {
		DBUp.Set(0)
		return
	}
	DBUp.Set(1)
}

// RecordQuery records metrics for a database query
// Call this function after the driver call completes:
//
//	start := time.Now()
//	res, err := r.collection.InsertOne(ctx, doc)
//	metrics.RecordQuery("insert_event", start, err)
func RecordQuery(operation string, start time.Time, err error) {
	duration := time.Since(start).Seconds()
	DBQueryDuration.WithLabelValues(operation).Observe(duration)

	if err != nil {
		errorType := "query_error"
		if err == context.Canceled {
			errorType = "canceled"
		} else if err == context.DeadlineExceeded {
			errorType = "timeout"
		}
		DBErrors.WithLabelValues(operation, errorType).Inc()
	}
}
