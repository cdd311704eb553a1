package database

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrClosed is returned by Provider.DB after Close.
var ErrClosed = errors.New("database provider closed")

// Provider owns the process-wide gorm handle. The connection is opened on
// first use, exactly once, and released by Close.
type Provider struct {
	dsn    string
	log    *zap.Logger
	config *gorm.Config

	once   sync.Once
	mu     sync.Mutex
	db     *gorm.DB
	err    error
	closed bool
}

// NewProvider prepares a Provider for dsn without connecting.
func NewProvider(dsn string, log *zap.Logger, verbose bool) *Provider {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	return &Provider{
		dsn: dsn,
		log: log,
		config: &gorm.Config{
			Logger: logger.Default.LogMode(level),
		},
	}
}

// FromDB wraps an already opened handle (used by tests).
func FromDB(db *gorm.DB) *Provider {
	p := &Provider{db: db}
	p.once.Do(func() {})
	return p
}

// DB returns the shared handle, connecting on the first call.
func (p *Provider) DB() (*gorm.DB, error) {
	p.once.Do(func() {
		db, err := gorm.Open(Dialector(p.dsn), p.config)
		if err != nil {
			p.err = fmt.Errorf("failed to connect to database: %w", err)
			return
		}
		p.db = db
		p.log.Info("Database connection established", zap.String("dialect", db.Dialector.Name()))
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	return p.db, p.err
}

// Close releases the underlying connection pool. It is safe to call more than once.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.db == nil {
		p.closed = true
		return nil
	}
	p.closed = true
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Dialector picks the gorm driver from the shape of dsn.
func Dialector(dsn string) gorm.Dialector {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.HasPrefix(dsn, "host="):
		return postgres.Open(dsn)
	case strings.HasPrefix(dsn, "mysql://"):
		return mysql.Open(strings.TrimPrefix(dsn, "mysql://"))
	case dsn == ":memory:", strings.HasPrefix(dsn, "file:"), strings.HasSuffix(dsn, ".db"), strings.HasSuffix(dsn, ".sqlite"):
		return sqlite.Open(dsn)
	default:
		return mysql.Open(dsn)
	}
}
