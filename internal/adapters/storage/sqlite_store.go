package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

// SQLiteStore implements ports.StateStore using GORM
type SQLiteStore struct {
	closeOnce sync.Once
	closeErr  error
	db        *gorm.DB
	path      string
}

// Verify interface compliance at compile time
var _ ports.StateStore = (*SQLiteStore)(nil)

// gormLogger wraps the pd logger for GORM
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
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	case elapsed > 200*time.Millisecond && l.level >= logger.Warn:
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	case l.level >= logger.Info:
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if logging.IsDebug() {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Warn)
}

// dsn enables WAL, a busy timeout and foreign keys on every pooled connection
func dsn(dbPath string) string {
	return "file:" + dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL&_foreign_keys=on"
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
// Prefer EngineRegistry.Get, which guarantees one store per path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var journalMode string
	if err := db.Raw("PRAGMA journal_mode").Scan(&journalMode).Error; err != nil {
		return nil, fmt.Errorf("failed to read journal mode: %w", err)
	}
	if !strings.EqualFold(journalMode, "wal") {
		logging.Logger.Warn("SQLite is not in WAL mode", "journal_mode", journalMode, "path", dbPath)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	logging.Logger.Debug("State store opened", "path", dbPath, "journal_mode", journalMode)
	return &SQLiteStore{db: db, path: dbPath}, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&RepositoryModel{}, &EventLogModel{}, &AIUsageLogModel{}); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	if !db.Migrator().HasTable(&ContextSnapshotModel{}) {
		if err := db.Exec(`
			CREATE TABLE IF NOT EXISTS context_snapshot (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				repository_id TEXT NOT NULL,
				timestamp DATETIME NOT NULL,
				git_summary TEXT NOT NULL DEFAULT '',
				terminal_summary TEXT NOT NULL DEFAULT '',
				terminal_last_command TEXT NOT NULL DEFAULT '',
				task_summary TEXT NOT NULL DEFAULT '',
				ai_summary TEXT NOT NULL DEFAULT '',
				human_objective TEXT,
				human_blocker TEXT,
				human_next_step TEXT,
				human_note TEXT,
				FOREIGN KEY (repository_id) REFERENCES repository(id) ON UPDATE CASCADE ON DELETE RESTRICT
			)
		`).Error; err != nil {
			return fmt.Errorf("failed to create context_snapshot table: %w", err)
		}
	}

	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_context_snapshot_repository_timestamp
		ON context_snapshot (repository_id, timestamp)`).Error; err != nil {
		return fmt.Errorf("failed to create snapshot index: %w", err)
	}

	return nil
}

// Path returns the database file backing the store
func (s *SQLiteStore) Path() string { return s.path }

// Close closes the database connection. Safe to call more than once.
func (s *SQLiteStore) Close() error {
	s.closeOnce.Do(func() {
		sqlDB, err := s.db.DB()
		if err != nil {
			s.closeErr = err
			return
		}
		s.closeErr = sqlDB.Close()
	})
	return s.closeErr
}

// SyncRepositories implements RepositorySyncer.SyncRepositories
func (s *SQLiteStore) SyncRepositories(ctx context.Context, repos []domain.Repository) error {
	if len(repos) == 0 {
		return nil
	}
	models := make([]RepositoryModel, len(repos))
	for i, r := range repos {
		models[i] = repositoryToModel(r)
	}

	return withRetry(ctx, func() error {
		return s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"path", "priority", "active_branch", "updated_at"}),
		}).Create(&models).Error
	}, 3)
}

// SaveSnapshot implements SnapshotWriter.SaveSnapshot
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap *domain.ContextSnapshot) error {
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now().UTC()
	}
	model := snapshotToModel(snap)

	err := withRetry(ctx, func() error {
		model.ID = 0
		return s.db.WithContext(ctx).Create(&model).Error
	}, 3)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("repository %s is not in the store: %w", snap.RepositoryID, err)
		}
		return fmt.Errorf("failed to save snapshot for %s: %w", snap.RepositoryID, err)
	}

	snap.ID = model.ID
	return nil
}

// LatestSnapshot implements SnapshotReader.LatestSnapshot
func (s *SQLiteStore) LatestSnapshot(ctx context.Context, repoID string) (*domain.ContextSnapshot, error) {
	var model ContextSnapshotModel
	err := withRetry(ctx, func() error {
		return s.db.WithContext(ctx).
			Where("repository_id = ?", repoID).
			Order("timestamp DESC").Order("id DESC").
			First(&model).Error
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w for %s", domain.ErrSnapshotNotFound, repoID)
		}
		return nil, err
	}

	snap := snapshotModelToDomain(model)
	return &snap, nil
}

// ListSnapshots implements SnapshotReader.ListSnapshots
func (s *SQLiteStore) ListSnapshots(ctx context.Context, repoID string, limit int) ([]domain.ContextSnapshot, error) {
	var models []ContextSnapshotModel
	err := withRetry(ctx, func() error {
		q := s.db.WithContext(ctx).
			Where("repository_id = ?", repoID).
			Order("timestamp DESC").Order("id DESC")
		if limit > 0 {
			q = q.Limit(limit)
		}
		return q.Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ContextSnapshot, len(models))
	for i, m := range models {
		out[i] = snapshotModelToDomain(m)
	}
	return out, nil
}

// LogEvent implements EventWriter.LogEvent
func (s *SQLiteStore) LogEvent(ctx context.Context, ev domain.Event) (int64, error) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	model := EventLogModel{
		EventKind:    string(ev.Kind),
		RepositoryID: ev.RepositoryID,
		Timestamp:    ev.Timestamp.UTC(),
	}

	err := withRetry(ctx, func() error {
		model.ID = 0
		return s.db.WithContext(ctx).Create(&model).Error
	}, 3)
	if err != nil {
		return 0, fmt.Errorf("failed to log %s event for %s: %w", ev.Kind, ev.RepositoryID, err)
	}
	return model.ID, nil
}

// ListEvents implements EventReader.ListEvents
func (s *SQLiteStore) ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	var models []EventLogModel
	err := withRetry(ctx, func() error {
		q := s.db.WithContext(ctx).Order("timestamp ASC").Order("id ASC")
		if filter.RepositoryID != "" {
			q = q.Where("repository_id = ?", filter.RepositoryID)
		}
		if filter.Kind != "" {
			q = q.Where("event_kind = ?", string(filter.Kind))
		}
		if !filter.Since.IsZero() {
			q = q.Where("timestamp >= ?", filter.Since.UTC())
		}
		return q.Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Event, len(models))
	for i, m := range models {
		out[i] = eventModelToDomain(m)
	}
	return out, nil
}

// RecordUsage implements UsageRecorder.RecordUsage
func (s *SQLiteStore) RecordUsage(ctx context.Context, usage domain.AIUsage) error {
	if usage.Timestamp.IsZero() {
		usage.Timestamp = time.Now().UTC()
	}
	model := usageToModel(usage)
	return withRetry(ctx, func() error {
		model.ID = 0
		return s.db.WithContext(ctx).Create(&model).Error
	}, 3)
}

type usageRow struct {
	Calls    int     `gorm:"column:calls"`
	CostUSD  float64 `gorm:"column:cost_usd"`
	Failures int     `gorm:"column:failures"`
	Provider string  `gorm:"column:provider"`
	Tokens   int     `gorm:"column:tokens"`
}

const usageColumns = `provider,
	COUNT(*) AS calls,
	COALESCE(SUM(tokens), 0) AS tokens,
	COALESCE(SUM(cost_usd), 0) AS cost_usd,
	COALESCE(SUM(CASE WHEN success THEN 0 ELSE 1 END), 0) AS failures`

// UsageSince implements UsageRecorder.UsageSince
func (s *SQLiteStore) UsageSince(ctx context.Context, provider string, since time.Time) (domain.UsageSummary, error) {
	var rows []usageRow
	err := withRetry(ctx, func() error {
		return s.db.WithContext(ctx).Model(&AIUsageLogModel{}).
			Select(usageColumns).
			Where("provider = ? AND timestamp >= ?", provider, since.UTC()).
			Group("provider").
			Scan(&rows).Error
	}, 3)
	if err != nil {
		return domain.UsageSummary{}, err
	}
	if len(rows) == 0 {
		return domain.UsageSummary{Provider: provider}, nil
	}
	return domain.UsageSummary(rows[0]), nil
}

// SummarizeUsage implements UsageReporter.SummarizeUsage
func (s *SQLiteStore) SummarizeUsage(ctx context.Context, since time.Time) ([]domain.UsageSummary, error) {
	var rows []usageRow
	err := withRetry(ctx, func() error {
		return s.db.WithContext(ctx).Model(&AIUsageLogModel{}).
			Select(usageColumns).
			Where("timestamp >= ?", since.UTC()).
			Group("provider").
			Order("provider").
			Scan(&rows).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	out := make([]domain.UsageSummary, len(rows))
	for i, r := range rows {
		out[i] = domain.UsageSummary(r)
	}
	return out, nil
}

// withRetry retries operations on SQLITE_BUSY with linear backoff
func withRetry(ctx context.Context, fn func() error, maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		err = fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if !errors.As(err, &sqliteErr) || (sqliteErr.Code != sqlite3.ErrBusy && sqliteErr.Code != sqlite3.ErrLocked) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Millisecond * time.Duration(50*(i+1))):
		}
	}
	return fmt.Errorf("operation failed after %d retries: %w", maxRetries, err)
}
