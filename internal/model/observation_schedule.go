package model

import "time"

// ObservationSchedule maps to observation_schedules: a booked classroom
// observation slot. Marked cleared when the evaluation is done.
type ObservationSchedule struct {
	ScheduleID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	TeacherID   string    `gorm:"type:uuid;not null;index"                       json:"teacher_id"`
	EvaluatorID string    `gorm:"type:uuid;not null;index"                       json:"evaluator_id"`
	ObserveDate time.Time `gorm:"type:date;not null"                             json:"observe_date"`
	StartTime   string    `gorm:"type:varchar(5);not null"                       json:"start_time"` // "HH:MM"
	EndTime     string    `gorm:"type:varchar(5);not null"                       json:"end_time"`   // "HH:MM"
	Room        string    `gorm:"type:varchar(50)"                               json:"room,omitempty"`
	IsCleared   bool      `gorm:"not null;default:false"                         json:"is_cleared"`
	BaseModel

	Teacher   *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
	Evaluator *User    `gorm:"foreignKey:EvaluatorID;references:UserID"  json:"evaluator,omitempty"`
}

// TableName sets the table name.
func (ObservationSchedule) TableName() string { return "observation_schedules" }
