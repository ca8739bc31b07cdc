package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
	"github.com/pkg/errors"
)

// Package metrics keeps operational time series (system gauges, order
// counters) in an embedded tstorage partition under the workdir.

var (
	storage  tstorage.Storage
	mu       sync.Mutex
	counters = make(map[string]int64)
)

// InitMetrics opens the embedded time-series storage under workdir.
func InitMetrics(workdir string) error {
	var err error
	storage, err = tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithRetention(time.Hour*24*90),
	)
	if err != nil {
		return errors.Wrap(err, "init metrics storage")
	}
	return nil
}

// Close flushes and closes the underlying storage.
func Close() error {
	if storage == nil {
		return nil
	}
	return storage.Close()
}

// SetGauge records an instantaneous value for name.
func SetGauge(name string, value int64) {
	if storage == nil {
		return
	}
	_ = storage.InsertRows([]tstorage.Row{
		{
			Metric:    name,
			DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: float64(value)},
		},
	})
}

// IncrCounter adds incr to a monotonic counter and records the new value.
func IncrCounter(name string, incr int64) {
	mu.Lock()
	counters[name] += incr
	v := counters[name]
	mu.Unlock()
	SetGauge(name, v)
}

// Query returns the data points for name between start and end (unix seconds).
func Query(name string, start, end int64) ([]*tstorage.DataPoint, error) {
	if storage == nil {
		return nil, errors.New("metrics storage not initialized")
	}
	points, err := storage.Select(name, nil, start, end)
	if err != nil {
		if errors.Is(err, tstorage.ErrNoDataPoints) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "query metric %s", name)
	}
	return points, nil
}
