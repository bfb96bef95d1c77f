package model

import "time"

// Audit actions.
const (
	AuditUserCreated       = "user.created"
	AuditUserDeactivated   = "user.deactivated"
	AuditPasswordReset     = "user.password_reset"
	AuditAssignmentAdded   = "assignment.added"
	AuditAssignmentRemoved = "assignment.removed"
	AuditEvaluationDone    = "evaluation.marked_done"
	AuditScheduleCreated   = "schedule.created"
)

// AuditLog maps to audit_logs. Append-only; rows are written inside the
// same transaction as the mutation they record where atomicity matters
// (mark-done).
type AuditLog struct {
	LogID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"log_id"`
	ActorID   string    `gorm:"type:uuid;not null;index"                       json:"actor_id"`
	Action    string    `gorm:"type:varchar(50);not null"                      json:"action"`
	Entity    string    `gorm:"type:varchar(50);not null"                      json:"entity"`
	EntityID  *string   `gorm:"type:uuid"                                      json:"entity_id,omitempty"`
	Detail    string    `gorm:"type:text"                                      json:"detail,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index"       json:"created_at"`
}

// TableName sets the table name.
func (AuditLog) TableName() string { return "audit_logs" }
