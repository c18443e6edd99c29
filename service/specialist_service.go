package service

import (
	"context"
	"errors"
	"time"

	"servicebot/pkg/logger"
	"servicebot/pkg/models"
	"servicebot/storage"
)

// ErrNoImminentAppointment is returned when a specialist tries to toggle
// availability without an approved appointment in the imminent window.
var ErrNoImminentAppointment = errors.New("no approved appointment in the imminent window")

// The availability toggle is allowed only around real scheduled work:
// an approved appointment dated within [now-30m, now+60m].
const (
	windowBefore = 30 * time.Minute
	windowAfter  = time.Hour
)

type SpecialistService interface {
	ToggleAvailability(ctx context.Context, teleID int64, now time.Time) (*models.Specialist, error)
	HasApprovedWork(ctx context.Context, teleID int64) (bool, error)
}

type specialistService struct {
	specialists  storage.ISpecialistStorage
	appointments storage.IAppointmentStorage
	log          logger.ILogger
}

func NewSpecialistService(stg storage.IStorage, log logger.ILogger) SpecialistService {
	return &specialistService{
		specialists:  stg.Specialist(),
		appointments: stg.Appointment(),
		log:          log,
	}
}

func (s *specialistService) ToggleAvailability(ctx context.Context, teleID int64, now time.Time) (*models.Specialist, error) {
	spec, err := s.specialists.GetByTelegramID(ctx, teleID)
	if err != nil {
		return nil, err
	}
	if spec == nil {
		return nil, errors.New("specialist not found")
	}

	count, err := s.appointments.CountApprovedInWindow(ctx, spec.ID, now.Add(-windowBefore), now.Add(windowAfter))
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNoImminentAppointment
	}

	spec.IsAvailable = !spec.IsAvailable
	if err := s.specialists.SetAvailability(ctx, spec.ID, spec.IsAvailable); err != nil {
		return nil, err
	}
	return spec, nil
}

// HasApprovedWork drives the specialist keyboard: the ready-to-work button
// is only shown when at least one approved appointment exists.
func (s *specialistService) HasApprovedWork(ctx context.Context, teleID int64) (bool, error) {
	spec, err := s.specialists.GetByTelegramID(ctx, teleID)
	if err != nil || spec == nil {
		return false, err
	}
	count, err := s.appointments.CountApproved(ctx, spec.ID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
