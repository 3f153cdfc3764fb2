package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sgbaird/pioreactor/internal/model"
)

// TimeRange represents different time window options
type TimeRange int

const (
	Range30Min TimeRange = iota
	Range1Hour
	Range6Hour
	Range1Day
	Range1Week
)

func (t TimeRange) String() string {
	switch t {
	case Range30Min:
		return "30min"
	case Range1Hour:
		return "1hour"
	case Range6Hour:
		return "6hours"
	case Range1Day:
		return "1day"
	case Range1Week:
		return "1week"
	default:
		return "unknown"
	}
}

// Duration returns the time duration for the range
func (t TimeRange) Duration() time.Duration {
	switch t {
	case Range30Min:
		return 30 * time.Minute
	case Range1Hour:
		return 1 * time.Hour
	case Range6Hour:
		return 6 * time.Hour
	case Range1Day:
		return 24 * time.Hour
	case Range1Week:
		return 7 * 24 * time.Hour
	default:
		return 30 * time.Minute
	}
}

// bucketSize returns the aggregation bucket in seconds for the range.
func (t TimeRange) bucketSize() int64 {
	switch t {
	case Range30Min:
		return 5
	case Range1Hour:
		return 30
	case Range6Hour:
		return 300
	case Range1Day:
		return 600
	case Range1Week:
		return 3600
	default:
		return 5
	}
}

// DataPoint represents one aggregated telemetry value in time
type DataPoint struct {
	Timestamp time.Time
	Value     float64
}

// Storage handles persistent experiment history
type Storage struct {
	db        *sql.DB
	writeChan chan any
	closeChan chan struct{}
}

// NewStorage opens (or creates) the history database under dataDir.
// An empty dataDir defaults to ~/.piomon.
func NewStorage(dataDir string) (*Storage, error) {
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".piomon")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	storage := &Storage{
		db:        db,
		writeChan: make(chan any, 1000),
		closeChan: make(chan struct{}),
	}

	// Start background writer
	go storage.writer()

	// Start cleanup routine
	go storage.cleanup()

	return storage, nil
}

// createTables creates the database schema
func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS unit_readings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		unit TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		kind TEXT NOT NULL,
		value REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_unit_kind_time
	ON unit_readings(unit, kind, timestamp);

	CREATE TABLE IF NOT EXISTS logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		unit TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		level TEXT,
		task TEXT,
		message TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_logs_time
	ON logs(timestamp);
	`

	_, err := db.Exec(schema)
	return err
}

// WriteReading queues a telemetry reading for writing
func (s *Storage) WriteReading(r model.Reading) {
	select {
	case s.writeChan <- r:
		// Successfully queued
	default:
		// Channel full, drop silently to avoid blocking
		// This is acceptable for history collection
	}
}

// WriteLog queues a log entry for writing
func (s *Storage) WriteLog(e model.LogEntry) {
	select {
	case s.writeChan <- e:
	default:
	}
}

// writer runs in background and batch writes to database
func (s *Storage) writer() {
	buffer := make([]any, 0, 100)
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case entry := <-s.writeChan:
			buffer = append(buffer, entry)

			if len(buffer) >= 50 {
				s.batchWrite(buffer)
				buffer = buffer[:0]
			}

		case <-ticker.C:
			// Periodic flush every 5 seconds
			if len(buffer) > 0 {
				s.batchWrite(buffer)
				buffer = buffer[:0]
			}

		case <-s.closeChan:
			// Final flush on close
			if len(buffer) > 0 {
				s.batchWrite(buffer)
			}
			return
		}
	}
}

// batchWrite writes a batch of queued rows in one transaction
func (s *Storage) batchWrite(entries []any) {
	tx, err := s.db.Begin()
	if err != nil {
		return
	}
	defer tx.Rollback()

	readingStmt, err := tx.Prepare(`
		INSERT INTO unit_readings (unit, timestamp, kind, value)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return
	}
	defer readingStmt.Close()

	logStmt, err := tx.Prepare(`
		INSERT INTO logs (unit, timestamp, level, task, message)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return
	}
	defer logStmt.Close()

	for _, entry := range entries {
		switch e := entry.(type) {
		case model.Reading:
			_, err = readingStmt.Exec(e.Unit, e.Timestamp.Unix(), string(e.Kind), e.Value)
		case model.LogEntry:
			_, err = logStmt.Exec(e.Unit, e.Timestamp.Unix(), e.Level, e.Task, e.Message)
		}
		if err != nil {
			continue
		}
	}

	tx.Commit()
}

// QuerySeries retrieves aggregated datapoints for one unit and reading kind
func (s *Storage) QuerySeries(unit string, kind model.ReadingKind, timeRange TimeRange) ([]DataPoint, error) {
	cutoff := time.Now().Add(-timeRange.Duration()).Unix()
	bucketSize := timeRange.bucketSize()

	query := `
		SELECT
			(timestamp / ?) * ? as bucket,
			AVG(value) as avg_value
		FROM unit_readings
		WHERE unit = ? AND kind = ? AND timestamp > ?
		GROUP BY bucket
		ORDER BY bucket ASC
	`

	rows, err := s.db.Query(query, bucketSize, bucketSize, unit, string(kind), cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []DataPoint
	for rows.Next() {
		var timestamp int64
		var value float64

		if err := rows.Scan(&timestamp, &value); err != nil {
			continue
		}

		points = append(points, DataPoint{
			Timestamp: time.Unix(timestamp, 0),
			Value:     value,
		})
	}

	return points, rows.Err()
}

// RecentLogs returns the newest limit log rows, newest first. Used to seed
// the live feed on startup.
func (s *Storage) RecentLogs(limit int) ([]model.LogEntry, error) {
	rows, err := s.db.Query(`
		SELECT unit, timestamp, level, task, message
		FROM logs
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.LogEntry
	for rows.Next() {
		var e model.LogEntry
		var timestamp int64
		var level, task sql.NullString

		if err := rows.Scan(&e.Unit, &timestamp, &level, &task, &e.Message); err != nil {
			continue
		}
		e.Timestamp = time.Unix(timestamp, 0)
		e.Level = level.String
		e.Task = task.String
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// cleanup removes old data periodically
func (s *Storage) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Delete data older than 7 days in batches to avoid locking
			cutoff := time.Now().Add(-7 * 24 * time.Hour).Unix()
			s.batchDelete("unit_readings", cutoff)
			s.batchDelete("logs", cutoff)

		case <-s.closeChan:
			return
		}
	}
}

// batchDelete removes old records in batches to prevent long-running locks
func (s *Storage) batchDelete(table string, cutoffTimestamp int64) {
	const batchSize = 1000
	for {
		result, err := s.db.Exec(
			fmt.Sprintf("DELETE FROM %s WHERE timestamp < ? LIMIT ?", table),
			cutoffTimestamp,
			batchSize,
		)
		if err != nil {
			return
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil || rowsAffected == 0 {
			// No more rows to delete
			return
		}

		// Small sleep to avoid overwhelming the database
		time.Sleep(100 * time.Millisecond)
	}
}

// Close closes the storage
func (s *Storage) Close() error {
	close(s.closeChan)
	time.Sleep(100 * time.Millisecond) // Allow goroutines to finish
	return s.db.Close()
}
