package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"adces/internal/dto"
	"adces/pkg/mail"
)

type mockMailer struct {
	sent []mail.Message
}

func (m *mockMailer) Send(msg mail.Message) {
	m.sent = append(m.sent, msg)
}

func TestScheduleCreateNotifiesTeacher(t *testing.T) {
	repo := newMockRepository()
	seedObservationFixtures(t, repo)
	mailer := &mockMailer{}
	svc := NewScheduleService(repo, mailer, zap.NewNop())

	resp, err := svc.Create(context.Background(), &dto.CreateScheduleRequest{
		TeacherID:   testTeacherID,
		ObserveDate: "2026-03-02",
		StartTime:   "09:00",
		EndTime:     "10:00",
		Room:        "Room 204",
	}, deanActor())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if resp.IsCleared {
		t.Error("new slot created already cleared")
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(mailer.sent))
	}
	if mailer.sent[0].ToEmail != "ana.reyes@example.edu" {
		t.Errorf("mail recipient = %q, want the observed teacher", mailer.sent[0].ToEmail)
	}
}

func TestScheduleCreateRejectsInvertedTimes(t *testing.T) {
	repo := newMockRepository()
	seedObservationFixtures(t, repo)
	svc := NewScheduleService(repo, &mockMailer{}, zap.NewNop())

	_, err := svc.Create(context.Background(), &dto.CreateScheduleRequest{
		TeacherID:   testTeacherID,
		ObserveDate: "2026-03-02",
		StartTime:   "10:00",
		EndTime:     "09:00",
	}, deanActor())
	if !errors.Is(err, ErrScheduleTimes) {
		t.Fatalf("Create error = %v, want ErrScheduleTimes", err)
	}
}

func TestScheduleListMineSkipsCleared(t *testing.T) {
	repo := newMockRepository()
	seedObservationFixtures(t, repo)
	svc := NewScheduleService(repo, &mockMailer{}, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateScheduleRequest{
		TeacherID:   testTeacherID,
		ObserveDate: "2026-03-02",
		StartTime:   "09:00",
		EndTime:     "10:00",
	}, deanActor()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Schedule.ClearByTeacher(ctx, testTeacherID); err != nil {
		t.Fatalf("clear schedules: %v", err)
	}

	open, err := svc.ListMine(ctx, deanActor(), false)
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if len(open) != 0 {
		t.Errorf("open slots = %d, want 0 after clearing", len(open))
	}

	all, err := svc.ListMine(ctx, deanActor(), true)
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("all slots = %d, want 1", len(all))
	}
}
