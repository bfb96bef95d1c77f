package dto

// DashboardResponse is the caller-scoped dashboard summary.
type DashboardResponse struct {
	TeacherCount     int64            `json:"teacher_count"`
	EvaluatedCount   int64            `json:"evaluated_count"`
	PendingCount     int64            `json:"pending_count"`
	AverageOverall   float64          `json:"average_overall"` // rounded to one decimal
	BandDistribution map[string]int64 `json:"band_distribution"`
}

// ReportRowResponse is one line of the evaluation report listing.
type ReportRowResponse struct {
	EvaluationID    string  `json:"evaluation_id"`
	TeacherName     string  `json:"teacher_name"`
	DepartmentName  string  `json:"department_name"`
	EvaluatorName   string  `json:"evaluator_name"`
	ObservationDate string  `json:"observation_date"`
	Status          string  `json:"status"`
	OverallAverage  float64 `json:"overall_average"`
	Label           string  `json:"label"`
}
