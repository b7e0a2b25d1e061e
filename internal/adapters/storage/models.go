package storage

import "time"

// RepositoryModel is the GORM model for the repository table
type RepositoryModel struct {
	ActiveBranch string `gorm:"not null;default:'main'"`
	CreatedAt    time.Time
	ID           string `gorm:"primaryKey"`
	Path         string `gorm:"not null"`
	Priority     int    `gorm:"not null;default:0"`
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (RepositoryModel) TableName() string { return "repository" }

// ContextSnapshotModel is the GORM model for context_snapshot.
// The table is created by hand so it carries the foreign key to repository.
type ContextSnapshotModel struct {
	AISummary           string    `gorm:"column:ai_summary;not null;default:''"`
	GitSummary          string    `gorm:"column:git_summary;not null;default:''"`
	HumanBlocker        *string   `gorm:"column:human_blocker"`
	HumanNextStep       *string   `gorm:"column:human_next_step"`
	HumanNote           *string   `gorm:"column:human_note"`
	HumanObjective      *string   `gorm:"column:human_objective"`
	ID                  int64     `gorm:"primaryKey;autoIncrement"`
	RepositoryID        string    `gorm:"column:repository_id;not null"`
	TaskSummary         string    `gorm:"column:task_summary;not null;default:''"`
	TerminalLastCommand string    `gorm:"column:terminal_last_command;not null;default:''"`
	TerminalSummary     string    `gorm:"column:terminal_summary;not null;default:''"`
	Timestamp           time.Time `gorm:"column:timestamp;not null"`
}

// TableName specifies the table name for GORM
func (ContextSnapshotModel) TableName() string { return "context_snapshot" }

// EventLogModel is the GORM model for event_log. No foreign key: events may
// name repositories that were never registered.
type EventLogModel struct {
	EventKind    string    `gorm:"column:event_kind;not null;index:idx_event_log_kind"`
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	RepositoryID string    `gorm:"column:repository_id;not null;index:idx_event_log_repository"`
	Timestamp    time.Time `gorm:"column:timestamp;not null"`
}

// TableName specifies the table name for GORM
func (EventLogModel) TableName() string { return "event_log" }

// AIUsageLogModel is the GORM model for ai_usage_log
type AIUsageLogModel struct {
	CostUSD      float64   `gorm:"column:cost_usd;not null;default:0"`
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	InputTokens  int       `gorm:"column:input_tokens;not null;default:0"`
	Model        string    `gorm:"column:model;not null"`
	OutputTokens int       `gorm:"column:output_tokens;not null;default:0"`
	Provider     string    `gorm:"column:provider;not null;index:idx_ai_usage_provider"`
	RepositoryID string    `gorm:"column:repository_id;not null;default:''"`
	Success      bool      `gorm:"column:success;not null"`
	Timestamp    time.Time `gorm:"column:timestamp;not null;index:idx_ai_usage_timestamp"`
	Tokens       int       `gorm:"column:tokens;not null;default:0"`
}

// TableName specifies the table name for GORM
func (AIUsageLogModel) TableName() string { return "ai_usage_log" }
