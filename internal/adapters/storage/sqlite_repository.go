// Package storage persists the local run history in SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/renato0307/remux/internal/logging"
	"github.com/renato0307/remux/internal/paths"
	"github.com/renato0307/remux/internal/ports"
)

// DefaultListLimit caps history listings when no limit is given
const DefaultListLimit = 50

// SQLiteRepository implements ports.RunRepository using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.RunRepository = (*SQLiteRepository)(nil)

// gormLogger routes GORM logs through the remux logger
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		logging.Logger.Error("gorm query error", "error", err, "duration", elapsed, "sql", sql, "rows", rows)
	case elapsed > 200*time.Millisecond:
		logging.Logger.Warn("slow query", "duration", elapsed, "sql", sql, "rows", rows)
	default:
		logging.Logger.Debug("gorm query", "duration", elapsed, "sql", sql, "rows", rows)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("REMUX_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository opens (creating if needed) the history database at dbPath
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dbPath = paths.ExpandPath(dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:  newGormLogger(),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets concurrent remux invocations record runs
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&RunModel{}); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			return nil, fmt.Errorf("failed to migrate runs schema: %w", err)
		}
	}

	logging.Logger.Debug("History database ready", "path", dbPath)
	return &SQLiteRepository{db: db}, nil
}

// RecordCreated stores a new run and returns its id, generating one when empty
func (r *SQLiteRepository) RecordCreated(ctx context.Context, run ports.Run) (string, error) {
	if run.SessionID == "" {
		return "", errors.New("run session id is required")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	model := portToRunModel(run)
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Create(&model).Error
	}, 3)
	if err != nil {
		return "", fmt.Errorf("failed to record run for session %s: %w", run.SessionID, err)
	}
	return model.ID, nil
}

// RecordOutcome finishes the most recent unfinished run of the session.
// A session with no open run is not an error; the outcome is dropped.
func (r *SQLiteRepository) RecordOutcome(ctx context.Context, sessionID string, outcome ports.RunOutcome) error {
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var run RunModel
			err := tx.Where("session_id = ? AND finished_at IS NULL", sessionID).
				Order("created_at DESC").
				First(&run).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logging.Logger.Debug("No open run to finish", "session", sessionID, "state", outcome.State)
				return nil
			}
			if err != nil {
				return err
			}

			updates := map[string]any{
				"error":     outcome.Error,
				"exit_code": outcome.ExitCode,
				"state":     string(outcome.State),
			}
			// A timed out run is still going; only terminal outcomes close it
			if outcome.State != ports.RunTimedOut && outcome.State != ports.RunCancelled {
				updates["finished_at"] = time.Now().UTC()
			}
			return tx.Model(&run).Updates(updates).Error
		})
	}, 3)
	if err != nil {
		return fmt.Errorf("failed to record outcome for session %s: %w", sessionID, err)
	}
	return nil
}

// List returns runs newest first, for one session or all when sessionID is empty
func (r *SQLiteRepository) List(ctx context.Context, sessionID string, limit int) ([]ports.Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var models []RunModel
	err := withRetry(func() error {
		query := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
		if sessionID != "" {
			query = query.Where("session_id = ?", sessionID)
		}
		return query.Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]ports.Run, 0, len(models))
	for _, m := range models {
		runs = append(runs, runModelToPort(m))
	}
	return runs, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// withRetry retries operations on SQLITE_BUSY with linear backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
