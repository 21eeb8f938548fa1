package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"FinSight/internal/domain/models"
	pkgch "FinSight/pkg/clickhouse"
	applogger "FinSight/pkg/logger"
)

// CHBarArchive stores fetched daily histories in ClickHouse. Writes run off
// the request path through the job queue; the engine never reads back from
// the archive, it exists for offline analysis.
type CHBarArchive struct {
	ch *pkgch.Client
	db *sql.DB
	l  *applogger.Logger
}

func NewCHBarArchive(ch *pkgch.Client, l *applogger.Logger) *CHBarArchive {
	return &CHBarArchive{ch: ch, db: ch.DB(), l: l}
}

var barSchema = []string{
	`CREATE DATABASE IF NOT EXISTS finsight`,
	`CREATE TABLE IF NOT EXISTS finsight.ohlcv_bars (
        symbol LowCardinality(String),
        ts     DateTime,
        open   Float64,
        high   Float64,
        low    Float64,
        close  Float64,
        vol    Float64
    ) ENGINE = ReplacingMergeTree
    PARTITION BY toYYYYMM(ts)
    ORDER BY (symbol, ts)`,
}

// Init ensures the database and table exist.
func (a *CHBarArchive) Init(ctx context.Context) error {
	return a.ch.InitSchema(ctx, barSchema)
}

// StoreBars batch-inserts one fetched history. Duplicate (symbol, ts) rows
// collapse in the ReplacingMergeTree.
func (a *CHBarArchive) StoreBars(ctx context.Context, symbol string, bars []models.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	start := time.Now()

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO finsight.ohlcv_bars (symbol, ts, open, high, low, close, vol) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx, symbol, b.Timestamp, b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("append bar: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	a.l.Debug("archived bars",
		applogger.String("symbol", symbol),
		applogger.Int("rows", len(bars)),
		applogger.Duration("duration_ms", time.Since(start)))
	return nil
}

// Health pings the pool.
func (a *CHBarArchive) Health(ctx context.Context) error {
	return a.ch.Health(ctx)
}

// Close closes the pool.
func (a *CHBarArchive) Close() error {
	return a.ch.Close()
}
