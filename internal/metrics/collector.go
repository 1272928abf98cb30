package metrics

import (
	"context"
	"time"

	"media-catalog/internal/logging"
)

// Stats is the catalog snapshot published as gauges.
type Stats struct {
	TotalFiles       int
	TotalDirectories int
	TotalSize        int64
	FilesByType      map[string]int
}

// StatsProvider supplies catalog statistics to the collector.
type StatsProvider interface {
	CollectStats(ctx context.Context) (Stats, error)
}

// Collector periodically collects and updates metrics
type Collector struct {
	statsProvider StatsProvider
	interval      time.Duration
	stopChan      chan struct{}
}

// NewCollector creates a new metrics collector
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.statsProvider == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stats, err := c.statsProvider.CollectStats(ctx)
	if err != nil {
		logging.Warn("Metrics collection failed: %v", err)
		return
	}

	for fileType, count := range stats.FilesByType {
		CatalogFilesTotal.WithLabelValues(fileType).Set(float64(count))
	}
	CatalogDirectoriesTotal.Set(float64(stats.TotalDirectories))
	CatalogSizeBytes.Set(float64(stats.TotalSize))

	logging.Debug("Metrics collected: files=%d, directories=%d, bytes=%d",
		stats.TotalFiles, stats.TotalDirectories, stats.TotalSize)
}
