package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"adces/internal/model"
	"adces/internal/policy"
	"adces/internal/repository"
	"adces/internal/rubric"
)

// ExportFile is a generated download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders evaluations and schedules into downloadable
// files: an Excel summary workbook, a printable per-evaluation PDF and
// an iCalendar feed of the evaluator's observation slots.
type ExportService interface {
	EvaluationsXLSX(ctx context.Context, actor policy.Actor) (*ExportFile, error)
	EvaluationPDF(ctx context.Context, evaluationID string, actor policy.Actor) (*ExportFile, error)
	ScheduleICS(ctx context.Context, actor policy.Actor) (*ExportFile, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates the ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// EvaluationsXLSX writes every evaluation in the actor's scope to one
// worksheet, one row per form with category and overall averages.
func (s *exportService) EvaluationsXLSX(ctx context.Context, actor policy.Actor) (*ExportFile, error) {
	evals, err := s.repo.Evaluation.ListAll(ctx, scopedEvaluationFilters(actor))
	if err != nil {
		s.logger.Error("export evaluation list failed", zap.Error(err))
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Evaluations"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Teacher", "Department", "Evaluator", "Observation Date", "Status",
		"Communications", "Management", "Assessment", "Overall", "Rating",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row := range evals {
		eval := &evals[row]
		summary := rubric.Summarize(eval.RatingsByCategory(rubric.ItemCounts))

		teacherName, deptName, evaluatorName := "", "", ""
		if eval.Teacher != nil {
			teacherName = eval.Teacher.Name
			if eval.Teacher.Department != nil {
				deptName = eval.Teacher.Department.Name
			}
		}
		if eval.Evaluator != nil {
			evaluatorName = eval.Evaluator.Name
		}

		values := []interface{}{
			teacherName,
			deptName,
			evaluatorName,
			eval.ObservationDate.Format(dateLayout),
			eval.Status,
			rubric.Round1(summary.CategoryAverages[rubric.CategoryCommunications]),
			rubric.Round1(summary.CategoryAverages[rubric.CategoryManagement]),
			rubric.Round1(summary.CategoryAverages[rubric.CategoryAssessment]),
			rubric.Round1(summary.Overall),
			summary.Label,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("workbook serialization failed", zap.Error(err))
		return nil, err
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("evaluations-%s.xlsx", time.Now().Format(dateLayout)),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

// EvaluationPDF renders one observation form as a printable report.
func (s *exportService) EvaluationPDF(ctx context.Context, evaluationID string, actor policy.Actor) (*ExportFile, error) {
	eval, err := s.repo.Evaluation.GetByID(ctx, evaluationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvaluationNotFound
		}
		s.logger.Error("evaluation lookup failed", zap.String("id", evaluationID), zap.Error(err))
		return nil, err
	}

	if !s.canReadEvaluation(eval, actor) {
		return nil, ErrEvaluationNotFound
	}

	byCategory := eval.RatingsByCategory(rubric.ItemCounts)
	summary := rubric.Summarize(byCategory)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Classroom Observation Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Classroom Observation Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	writeField := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 7, value, "", "L", false)
	}

	if eval.Teacher != nil {
		writeField("Teacher", eval.Teacher.Name)
		if eval.Teacher.Department != nil {
			writeField("Department", eval.Teacher.Department.Name)
		}
	}
	if eval.Evaluator != nil {
		writeField("Evaluator", eval.Evaluator.Name)
	}
	writeField("Observation Date", eval.ObservationDate.Format(dateLayout))
	writeField("Status", eval.Status)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Scores", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, category := range rubric.Categories {
		avg := rubric.Round1(summary.CategoryAverages[category])
		pdf.CellFormat(90, 7, rubric.CategoryLabels[category], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("%.1f", avg), "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(90, 7, "Overall", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("%.1f (%s)", rubric.Round1(summary.Overall), summary.Label), "T", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeSection := func(title, body string) {
		if body == "" {
			return
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, body, "", "L", false)
		pdf.Ln(2)
	}

	writeSection("Strengths", eval.Strengths)
	writeSection("Areas for Improvement", eval.ImprovementAreas)
	writeSection("Recommendations", eval.Recommendations)
	writeSection("Agreement", eval.Agreement)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.logger.Error("pdf rendering failed", zap.String("id", evaluationID), zap.Error(err))
		return nil, err
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("evaluation-%s.pdf", evaluationID),
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}, nil
}

// ScheduleICS publishes the actor's open observation slots as an
// iCalendar feed. Times are interpreted in the server's local zone.
func (s *exportService) ScheduleICS(ctx context.Context, actor policy.Actor) (*ExportFile, error) {
	schedules, err := s.repo.Schedule.ListByEvaluator(ctx, actor.ID, false)
	if err != nil {
		s.logger.Error("schedule list failed", zap.Error(err))
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//ADCES//Observation Schedule//EN")

	for i := range schedules {
		schedule := &schedules[i]

		event := cal.AddEvent(fmt.Sprintf("%s@adces", schedule.ScheduleID))
		event.SetDtStampTime(time.Now())
		event.SetStartAt(slotTime(schedule.ObserveDate, schedule.StartTime))
		event.SetEndAt(slotTime(schedule.ObserveDate, schedule.EndTime))

		title := "Classroom observation"
		if schedule.Teacher != nil {
			title = "Observe " + schedule.Teacher.Name
		}
		event.SetSummary(title)
		if schedule.Room != "" {
			event.SetLocation(schedule.Room)
		}
	}

	return &ExportFile{
		Filename:    "observation-schedule.ics",
		ContentType: "text/calendar",
		Data:        []byte(cal.Serialize()),
	}, nil
}

// canReadEvaluation mirrors the read-scope rule used by the evaluation
// listing.
func (s *exportService) canReadEvaluation(eval *model.Evaluation, actor policy.Actor) bool {
	switch {
	case eval.EvaluatorID == actor.ID:
		return true
	case actor.Role == policy.RoleEDP, policy.IsInstitutionWide(actor.Role):
		return true
	case policy.IsCoordinator(actor.Role):
		return false
	default: // dean, principal
		return eval.Teacher != nil && eval.Teacher.DepartmentID == actor.DepartmentID
	}
}

// slotTime combines the slot date with an "HH:MM" clock value.
func slotTime(date time.Time, clock string) time.Time {
	t, err := time.ParseInLocation("15:04", clock, time.Local)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
}
