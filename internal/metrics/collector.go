package metrics

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UpdateDBStats updates database connection pool metrics
func (m *Metrics) UpdateDBStats(stats sql.DBStats) {
	m.safeExecute("UpdateDBStats", func() {
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
	})
}

// Collector samples gauges that are read from the database
type Collector struct {
	db       *gorm.DB
	metrics  *Metrics
	logger   *zap.Logger
	interval time.Duration
	done     chan struct{}
	stopped  chan struct{}
}

// NewCollector creates a new collector
func NewCollector(db *gorm.DB, metrics *Metrics, logger *zap.Logger, interval time.Duration) *Collector {
	return &Collector{
		db:       db,
		metrics:  metrics,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start begins collecting metrics
func (c *Collector) Start() {
	go func() {
		defer close(c.stopped)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector and waits for the loop to exit
func (c *Collector) Stop() {
	close(c.done)
	<-c.stopped
}

func (c *Collector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in metrics collection", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var boardCount int64
	if err := c.db.WithContext(ctx).Table("boards").Count(&boardCount).Error; err != nil {
		c.logger.Error("Failed to count boards", zap.Error(err))
	} else {
		c.metrics.SetBoardsTotal(boardCount)
	}

	if sqlDB, err := c.db.DB(); err == nil {
		c.metrics.UpdateDBStats(sqlDB.Stats())
	}
}
