package model

// TeacherAssignment maps to teacher_assignments: the edge granting an
// evaluator visibility of a teacher, optionally scoped to a subject or
// grade level.
type TeacherAssignment struct {
	AssignmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	EvaluatorID  string `gorm:"type:uuid;not null;index"                       json:"evaluator_id"`
	TeacherID    string `gorm:"type:uuid;not null"                             json:"teacher_id"`
	Subject      string `gorm:"type:varchar(100)"                              json:"subject,omitempty"`
	GradeLevel   string `gorm:"type:varchar(50)"                               json:"grade_level,omitempty"`
	BaseModel

	Evaluator *User    `gorm:"foreignKey:EvaluatorID;references:UserID"  json:"evaluator,omitempty"`
	Teacher   *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

// TableName sets the table name.
func (TeacherAssignment) TableName() string { return "teacher_assignments" }

// EvaluatorAssignment maps to evaluator_assignments: the edge between a
// supervising dean/principal and a coordinator they manage.
type EvaluatorAssignment struct {
	AssignmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	SupervisorID string `gorm:"type:uuid;not null;index"                       json:"supervisor_id"`
	EvaluatorID  string `gorm:"type:uuid;not null"                             json:"evaluator_id"`
	BaseModel

	Supervisor *User `gorm:"foreignKey:SupervisorID;references:UserID" json:"supervisor,omitempty"`
	Evaluator  *User `gorm:"foreignKey:EvaluatorID;references:UserID"  json:"evaluator,omitempty"`
}

// TableName sets the table name.
func (EvaluatorAssignment) TableName() string { return "evaluator_assignments" }

// EvaluatorSubject maps to evaluator_subjects: a subject coordinator's
// declared specialization.
type EvaluatorSubject struct {
	ID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EvaluatorID string `gorm:"type:uuid;not null;index"                       json:"evaluator_id"`
	Subject     string `gorm:"type:varchar(100);not null"                     json:"subject"`
}

// TableName sets the table name.
func (EvaluatorSubject) TableName() string { return "evaluator_subjects" }

// EvaluatorGradeLevel maps to evaluator_grade_levels: a grade-level
// coordinator's declared specialization.
type EvaluatorGradeLevel struct {
	ID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EvaluatorID string `gorm:"type:uuid;not null;index"                       json:"evaluator_id"`
	GradeLevel  string `gorm:"type:varchar(50);not null"                      json:"grade_level"`
}

// TableName sets the table name.
func (EvaluatorGradeLevel) TableName() string { return "evaluator_grade_levels" }
