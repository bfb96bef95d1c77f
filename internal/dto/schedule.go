package dto

// CreateScheduleRequest books a classroom observation slot.
type CreateScheduleRequest struct {
	TeacherID   string `json:"teacher_id"   binding:"required,uuid"`
	ObserveDate string `json:"observe_date" binding:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time"   binding:"required,datetime=15:04"`
	EndTime     string `json:"end_time"     binding:"required,datetime=15:04"`
	Room        string `json:"room"         binding:"omitempty,max=50"`
}

// ScheduleResponse is one observation slot.
type ScheduleResponse struct {
	ID          string           `json:"id"`
	Teacher     *TeacherResponse `json:"teacher,omitempty"`
	Evaluator   *UserResponse    `json:"evaluator,omitempty"`
	ObserveDate string           `json:"observe_date"`
	StartTime   string           `json:"start_time"`
	EndTime     string           `json:"end_time"`
	Room        string           `json:"room,omitempty"`
	IsCleared   bool             `json:"is_cleared"`
}

// AuditLogResponse is one audit trail row.
type AuditLogResponse struct {
	ID        string `json:"id"`
	ActorID   string `json:"actor_id"`
	Action    string `json:"action"`
	Entity    string `json:"entity"`
	EntityID  string `json:"entity_id,omitempty"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"created_at"`
}
