package model

// Teacher evaluation statuses.
const (
	TeacherEvalPending = "pending"
	TeacherEvalDone    = "done"
)

// Teacher maps to teachers: the faculty members under observation.
type Teacher struct {
	TeacherID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	DepartmentID string `gorm:"type:uuid;not null"                             json:"department_id"`
	Subject      string `gorm:"type:varchar(100)"                              json:"subject,omitempty"`
	GradeLevel   string `gorm:"type:varchar(50)"                               json:"grade_level,omitempty"`
	EvalStatus   string `gorm:"type:varchar(20);not null;default:'pending'"    json:"eval_status"`
	BaseModel

	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName sets the table name.
func (Teacher) TableName() string { return "teachers" }
