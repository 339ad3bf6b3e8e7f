package audit

import "time"

const ActionGenerateReport = "Generate Report"

// Log is one compliance record. Reports, not CRUD, are the only writers
// today; the table is append-only.
type Log struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	Actor      string    `json:"actor" gorm:"column:actor;not null;index"`
	Action     string    `json:"action" gorm:"column:action;not null"`
	TargetUser string    `json:"target_user" gorm:"column:target_user"`
	Detail     string    `json:"detail" gorm:"column:detail"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Log) TableName() string {
	return "audit_logs"
}

// Repository defines the data access methods for audit logs.
type Repository interface {
	Create(l *Log) error
	GetRecent(limit int) ([]*Log, error)
}
