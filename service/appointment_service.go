package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"servicebot/pkg/logger"
	"servicebot/pkg/models"
	"servicebot/storage"
)

// DateLayout is the only accepted format for appointment dates,
// interpreted in the service's display timezone.
const DateLayout = "02.01.2006 15:04"

// ParseDate parses admin date input. Anything not matching DateLayout is an
// error; the caller reprompts and keeps its state.
func ParseDate(input string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(input), loc)
}

type AppointmentService interface {
	CreateRequest(ctx context.Context, clientID int64, description string) (*models.Appointment, error)
	GetByID(ctx context.Context, id int64) (*models.Appointment, error)
	Assign(ctx context.Context, id, specialistID int64, date time.Time) error
	Cancel(ctx context.Context, id int64) error
	ConfirmByClient(ctx context.Context, id int64) error
	RateClient(ctx context.Context, appointmentID int64, score int) error
	ClientHistory(ctx context.Context, clientID int64) ([]*models.Appointment, error)
	Schedule(ctx context.Context, specialistID int64) ([]*models.Appointment, error)
}

type appointmentService struct {
	appointments storage.IAppointmentStorage
	clients      storage.IClientStorage
	ratings      storage.IRatingStorage
	loc          *time.Location
	log          logger.ILogger
}

func NewAppointmentService(stg storage.IStorage, loc *time.Location, log logger.ILogger) AppointmentService {
	return &appointmentService{
		appointments: stg.Appointment(),
		clients:      stg.Client(),
		ratings:      stg.Rating(),
		loc:          loc,
		log:          log,
	}
}

func (s *appointmentService) CreateRequest(ctx context.Context, clientID int64, description string) (*models.Appointment, error) {
	return s.appointments.Create(ctx, clientID, description)
}

func (s *appointmentService) GetByID(ctx context.Context, id int64) (*models.Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *appointmentService) Assign(ctx context.Context, id, specialistID int64, date time.Time) error {
	return s.appointments.Assign(ctx, id, specialistID, date)
}

// Cancel is terminal and idempotent: a second press on a stale button
// overwrites canceled with canceled.
func (s *appointmentService) Cancel(ctx context.Context, id int64) error {
	return s.appointments.UpdateStatus(ctx, id, models.AppointmentCanceled)
}

func (s *appointmentService) ConfirmByClient(ctx context.Context, id int64) error {
	return s.appointments.SetClientApproved(ctx, id, true)
}

// RateClient appends a rating for the appointment's client and folds the
// score into the client's aggregate.
func (s *appointmentService) RateClient(ctx context.Context, appointmentID int64, score int) error {
	if score < 1 || score > 5 {
		return fmt.Errorf("score %d out of range", score)
	}

	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		return fmt.Errorf("appointment %d not found", appointmentID)
	}
	if appointment.SpecialistID == nil {
		return fmt.Errorf("appointment %d has no specialist", appointmentID)
	}

	err = s.ratings.Create(ctx, &models.Rating{
		ClientID:     appointment.ClientID,
		SpecialistID: *appointment.SpecialistID,
		Score:        score,
	})
	if err != nil {
		return err
	}

	return s.clients.ApplyRating(ctx, appointment.ClientID, score)
}

func (s *appointmentService) ClientHistory(ctx context.Context, clientID int64) ([]*models.Appointment, error) {
	return s.appointments.GetByClient(ctx, clientID)
}

func (s *appointmentService) Schedule(ctx context.Context, specialistID int64) ([]*models.Appointment, error) {
	return s.appointments.GetBySpecialist(ctx, specialistID)
}
