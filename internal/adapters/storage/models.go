package storage

import "time"

// RunModel is the GORM model for the runs table
type RunModel struct {
	Command    string `gorm:"not null;default:''"`
	CreatedAt  time.Time
	Cwd        string     `gorm:"not null;default:''"`
	Error      string     `gorm:"not null;default:''"`
	ExitCode   *int       `gorm:"default:null"`
	FinishedAt *time.Time `gorm:"default:null"`
	ID         string     `gorm:"primaryKey"`
	SessionID  string     `gorm:"not null;index:idx_runs_session_id"`
	State      string     `gorm:"not null;default:'created';check:state IN ('created','exited','timed_out','cancelled','killed')"`
	Target     string     `gorm:"not null;default:''"`
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (RunModel) TableName() string { return "runs" }
