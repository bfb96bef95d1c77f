package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"adces/internal/dto"
	"adces/internal/model"
	"adces/internal/policy"
	"adces/internal/repository"
	"adces/pkg/mail"
)

var (
	ErrScheduleNotFound = errors.New("observation schedule not found")
	ErrScheduleTimes    = errors.New("schedule end time must be after the start time")
)

// ScheduleService books classroom observation slots and notifies the
// observed teacher by mail.
type ScheduleService interface {
	Create(ctx context.Context, req *dto.CreateScheduleRequest, actor policy.Actor) (*dto.ScheduleResponse, error)
	ListMine(ctx context.Context, actor policy.Actor, includeCleared bool) ([]dto.ScheduleResponse, error)
	ListByTeacher(ctx context.Context, teacherID string, actor policy.Actor) ([]dto.ScheduleResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	mailer mail.Mailer
	logger *zap.Logger
}

// NewScheduleService creates the ScheduleService.
func NewScheduleService(repo *repository.Repository, mailer mail.Mailer, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, mailer: mailer, logger: logger}
}

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleRequest, actor policy.Actor) (*dto.ScheduleResponse, error) {
	if req.EndTime <= req.StartTime {
		return nil, ErrScheduleTimes
	}

	ok, err := canReachTeacherID(ctx, s.repo, actor, req.TeacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	if !ok {
		return nil, ErrTeacherNotVisible
	}

	date, err := time.Parse(dateLayout, req.ObserveDate)
	if err != nil {
		return nil, fmt.Errorf("parsing observation date: %w", err)
	}

	schedule := &model.ObservationSchedule{
		TeacherID:   req.TeacherID,
		EvaluatorID: actor.ID,
		ObserveDate: date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Room:        req.Room,
		BaseModel:   model.BaseModel{CreatedBy: &actor.ID},
	}

	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		s.logger.Error("schedule create failed", zap.Error(err))
		return nil, err
	}

	writeAudit(ctx, s.repo.Audit, s.logger, actor.ID, model.AuditScheduleCreated,
		"observation_schedule", schedule.ScheduleID,
		fmt.Sprintf("teacher %s on %s %s-%s", req.TeacherID, req.ObserveDate, req.StartTime, req.EndTime))

	teacher, err := s.repo.Teacher.GetByID(ctx, req.TeacherID)
	if err != nil {
		return nil, err
	}
	evaluator, err := s.repo.User.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	schedule.Teacher = teacher
	schedule.Evaluator = evaluator

	s.notifyTeacher(schedule)

	return toScheduleResponse(schedule), nil
}

func (s *scheduleService) ListMine(ctx context.Context, actor policy.Actor, includeCleared bool) ([]dto.ScheduleResponse, error) {
	schedules, err := s.repo.Schedule.ListByEvaluator(ctx, actor.ID, includeCleared)
	if err != nil {
		s.logger.Error("schedule list failed", zap.Error(err))
		return nil, err
	}
	return toScheduleResponses(schedules), nil
}

func (s *scheduleService) ListByTeacher(ctx context.Context, teacherID string, actor policy.Actor) ([]dto.ScheduleResponse, error) {
	ok, err := canReachTeacherID(ctx, s.repo, actor, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	if !ok {
		return nil, ErrTeacherNotVisible
	}

	schedules, err := s.repo.Schedule.ListByTeacher(ctx, teacherID)
	if err != nil {
		s.logger.Error("schedule list failed", zap.String("teacher", teacherID), zap.Error(err))
		return nil, err
	}
	return toScheduleResponses(schedules), nil
}

// notifyTeacher mails the observed teacher. Delivery is best-effort and
// never blocks the booking.
func (s *scheduleService) notifyTeacher(schedule *model.ObservationSchedule) {
	if schedule.Teacher == nil || schedule.Teacher.Email == "" {
		return
	}

	evaluatorName := "your evaluator"
	if schedule.Evaluator != nil {
		evaluatorName = schedule.Evaluator.Name
	}

	s.mailer.Send(mail.Message{
		ToName:  schedule.Teacher.Name,
		ToEmail: schedule.Teacher.Email,
		Subject: "Classroom observation scheduled",
		Body: fmt.Sprintf(
			"Dear %s,\n\nA classroom observation has been scheduled by %s on %s from %s to %s%s.\n\nPlease be prepared.\n",
			schedule.Teacher.Name,
			evaluatorName,
			schedule.ObserveDate.Format(dateLayout),
			schedule.StartTime,
			schedule.EndTime,
			roomSuffix(schedule.Room),
		),
	})
}

func roomSuffix(room string) string {
	if room == "" {
		return ""
	}
	return " in " + room
}

func toScheduleResponse(schedule *model.ObservationSchedule) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{
		ID:          schedule.ScheduleID,
		ObserveDate: schedule.ObserveDate.Format(dateLayout),
		StartTime:   schedule.StartTime,
		EndTime:     schedule.EndTime,
		Room:        schedule.Room,
		IsCleared:   schedule.IsCleared,
	}
	if schedule.Teacher != nil {
		resp.Teacher = toTeacherResponse(schedule.Teacher)
	}
	if schedule.Evaluator != nil {
		resp.Evaluator = toUserResponse(schedule.Evaluator)
	}
	return resp
}

func toScheduleResponses(schedules []model.ObservationSchedule) []dto.ScheduleResponse {
	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, *toScheduleResponse(&schedules[i]))
	}
	return result
}
