package model

import "time"

// Evaluation statuses. A completed evaluation is immutable: there is no
// completed→draft transition and no delete path.
const (
	EvaluationDraft     = "draft"
	EvaluationCompleted = "completed"
)

// Evaluation maps to evaluations: one observation form per
// (teacher, evaluator, observation date).
type Evaluation struct {
	EvaluationID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"evaluation_id"`
	TeacherID        string    `gorm:"type:uuid;not null"                             json:"teacher_id"`
	EvaluatorID      string    `gorm:"type:uuid;not null"                             json:"evaluator_id"`
	ObservationDate  time.Time `gorm:"type:date;not null"                             json:"observation_date"`
	Status           string    `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	Strengths        string    `gorm:"type:text"                                      json:"strengths,omitempty"`
	ImprovementAreas string    `gorm:"type:text"                                      json:"improvement_areas,omitempty"`
	Recommendations  string    `gorm:"type:text"                                      json:"recommendations,omitempty"`
	Agreement        string    `gorm:"type:text"                                      json:"agreement,omitempty"`
	BaseModel

	Teacher   *Teacher           `gorm:"foreignKey:TeacherID;references:TeacherID"  json:"teacher,omitempty"`
	Evaluator *User              `gorm:"foreignKey:EvaluatorID;references:UserID"   json:"evaluator,omitempty"`
	Details   []EvaluationDetail `gorm:"foreignKey:EvaluationID"                    json:"details,omitempty"`
}

// TableName sets the table name.
func (Evaluation) TableName() string { return "evaluations" }

// EvaluationDetail maps to evaluation_details: one set rating per rubric
// indicator. Unrated indicators have no row.
type EvaluationDetail struct {
	DetailID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"detail_id"`
	EvaluationID string `gorm:"type:uuid;not null;index"                       json:"evaluation_id"`
	Category     string `gorm:"type:varchar(20);not null"                      json:"category"`
	ItemIndex    int    `gorm:"not null"                                       json:"item_index"`
	Rating       int    `gorm:"not null"                                       json:"rating"`
}

// TableName sets the table name.
func (EvaluationDetail) TableName() string { return "evaluation_details" }

// RatingsByCategory groups the detail rows into the category → item
// slices the rubric package consumes. Slice length is the indicator
// count for the category; unrated slots stay 0.
func (e *Evaluation) RatingsByCategory(itemCounts map[string]int) map[string][]int {
	out := make(map[string][]int, len(itemCounts))
	for name, count := range itemCounts {
		out[name] = make([]int, count)
	}
	for _, d := range e.Details {
		items, ok := out[d.Category]
		if !ok {
			continue
		}
		if d.ItemIndex >= 0 && d.ItemIndex < len(items) {
			items[d.ItemIndex] = d.Rating
		}
	}
	return out
}
