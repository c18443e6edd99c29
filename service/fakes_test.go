package service

import (
	"context"
	"errors"
	"time"

	"servicebot/pkg/logger"
	"servicebot/pkg/models"
	"servicebot/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

// In-memory storage fakes mirroring the Postgres repo semantics.

type fakeStorage struct {
	clients      *fakeClientRepo
	specialists  *fakeSpecialistRepo
	appointments *fakeAppointmentRepo
	blacklist    *fakeBlacklistRepo
	ratings      *fakeRatingRepo
}

func newFakeStorage() *fakeStorage {
	clients := &fakeClientRepo{}
	return &fakeStorage{
		clients:      clients,
		specialists:  &fakeSpecialistRepo{},
		appointments: &fakeAppointmentRepo{},
		blacklist:    &fakeBlacklistRepo{clients: clients},
		ratings:      &fakeRatingRepo{},
	}
}

func (f *fakeStorage) Client() storage.IClientStorage           { return f.clients }
func (f *fakeStorage) Specialist() storage.ISpecialistStorage   { return f.specialists }
func (f *fakeStorage) Appointment() storage.IAppointmentStorage { return f.appointments }
func (f *fakeStorage) Blacklist() storage.IBlacklistStorage     { return f.blacklist }
func (f *fakeStorage) Rating() storage.IRatingStorage           { return f.ratings }
func (f *fakeStorage) Close()                                   {}
func (f *fakeStorage) GetPool() *pgxpool.Pool                   { return nil }

type fakeClientRepo struct {
	rows   []*models.Client
	nextID int64
}

func (r *fakeClientRepo) Create(_ context.Context, client *models.Client) (*models.Client, error) {
	for _, c := range r.rows {
		if c.TelegramID == client.TelegramID {
			return nil, errors.New("duplicate telegram_id")
		}
	}
	r.nextID++
	client.ID = r.nextID
	client.Status = models.ClientStatusActive
	client.CreatedAt = time.Now()
	r.rows = append(r.rows, client)
	return client, nil
}

func (r *fakeClientRepo) GetByTelegramID(_ context.Context, teleID int64) (*models.Client, error) {
	for _, c := range r.rows {
		if c.TelegramID == teleID {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id int64) (*models.Client, error) {
	for _, c := range r.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) GetAll(_ context.Context) ([]*models.Client, error) {
	return r.rows, nil
}

func (r *fakeClientRepo) Count(_ context.Context) (int, error) {
	return len(r.rows), nil
}

func (r *fakeClientRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	for _, c := range r.rows {
		if c.ID == id {
			c.Status = status
		}
	}
	return nil
}

func (r *fakeClientRepo) ApplyRating(_ context.Context, id int64, score int) error {
	for _, c := range r.rows {
		if c.ID == id {
			c.Rating = (c.Rating*float64(c.RatingsCount) + float64(score)) / float64(c.RatingsCount+1)
			c.RatingsCount++
		}
	}
	return nil
}

type fakeSpecialistRepo struct {
	rows   []*models.Specialist
	nextID int64
}

func (r *fakeSpecialistRepo) Upsert(_ context.Context, teleID int64, name, username string) error {
	for _, s := range r.rows {
		if s.TelegramID == teleID {
			s.Name = name
			s.Username = username
			return nil
		}
	}
	r.nextID++
	r.rows = append(r.rows, &models.Specialist{
		ID:          r.nextID,
		TelegramID:  teleID,
		Name:        name,
		Username:    username,
		IsAvailable: true,
	})
	return nil
}

func (r *fakeSpecialistRepo) GetByTelegramID(_ context.Context, teleID int64) (*models.Specialist, error) {
	for _, s := range r.rows {
		if s.TelegramID == teleID {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSpecialistRepo) GetByID(_ context.Context, id int64) (*models.Specialist, error) {
	for _, s := range r.rows {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSpecialistRepo) GetAll(_ context.Context) ([]*models.Specialist, error) {
	return r.rows, nil
}

func (r *fakeSpecialistRepo) GetAvailable(_ context.Context) ([]*models.Specialist, error) {
	var available []*models.Specialist
	for _, s := range r.rows {
		if s.IsAvailable {
			available = append(available, s)
		}
	}
	return available, nil
}

func (r *fakeSpecialistRepo) SetAvailability(_ context.Context, id int64, available bool) error {
	for _, s := range r.rows {
		if s.ID == id {
			s.IsAvailable = available
		}
	}
	return nil
}

type fakeAppointmentRepo struct {
	rows   []*models.Appointment
	nextID int64
}

func (r *fakeAppointmentRepo) Create(_ context.Context, clientID int64, description string) (*models.Appointment, error) {
	r.nextID++
	a := &models.Appointment{
		ID:          r.nextID,
		ClientID:    clientID,
		Status:      models.AppointmentPending,
		Description: description,
		CreatedAt:   time.Now(),
	}
	r.rows = append(r.rows, a)
	return a, nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*models.Appointment, error) {
	for _, a := range r.rows {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) GetAll(_ context.Context) ([]*models.Appointment, error) {
	return r.rows, nil
}

func (r *fakeAppointmentRepo) GetByClient(_ context.Context, clientID int64) ([]*models.Appointment, error) {
	var out []*models.Appointment
	for _, a := range r.rows {
		if a.ClientID == clientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) GetBySpecialist(_ context.Context, specialistID int64) ([]*models.Appointment, error) {
	var out []*models.Appointment
	for _, a := range r.rows {
		if a.SpecialistID != nil && *a.SpecialistID == specialistID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) GetApproved(_ context.Context) ([]*models.Appointment, error) {
	var out []*models.Appointment
	for _, a := range r.rows {
		if a.Status == models.AppointmentApproved {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) Assign(_ context.Context, id, specialistID int64, date time.Time) error {
	for _, a := range r.rows {
		if a.ID == id {
			sid := specialistID
			d := date
			a.SpecialistID = &sid
			a.Date = &d
			a.Status = models.AppointmentApproved
		}
	}
	return nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	for _, a := range r.rows {
		if a.ID == id {
			a.Status = status
		}
	}
	return nil
}

func (r *fakeAppointmentRepo) SetClientApproved(_ context.Context, id int64, approved bool) error {
	for _, a := range r.rows {
		if a.ID == id {
			v := approved
			a.ClientApproved = &v
		}
	}
	return nil
}

func (r *fakeAppointmentRepo) SetSpecialistApproved(_ context.Context, id int64, approved bool) error {
	for _, a := range r.rows {
		if a.ID == id {
			v := approved
			a.SpecialistApproved = &v
		}
	}
	return nil
}

func (r *fakeAppointmentRepo) CountApproved(_ context.Context, specialistID int64) (int, error) {
	count := 0
	for _, a := range r.rows {
		if a.SpecialistID != nil && *a.SpecialistID == specialistID && a.Status == models.AppointmentApproved {
			count++
		}
	}
	return count, nil
}

func (r *fakeAppointmentRepo) CountApprovedInWindow(_ context.Context, specialistID int64, from, to time.Time) (int, error) {
	count := 0
	for _, a := range r.rows {
		if a.SpecialistID == nil || *a.SpecialistID != specialistID || a.Status != models.AppointmentApproved || a.Date == nil {
			continue
		}
		if !a.Date.Before(from) && !a.Date.After(to) {
			count++
		}
	}
	return count, nil
}

func (r *fakeAppointmentRepo) CountByStatus(_ context.Context, status string) (int, error) {
	count := 0
	for _, a := range r.rows {
		if a.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeBlacklistRepo struct {
	rows    []*models.BlacklistEntry
	clients *fakeClientRepo
	nextID  int64
}

func (r *fakeBlacklistRepo) Create(_ context.Context, clientID int64, until time.Time) error {
	r.nextID++
	r.rows = append(r.rows, &models.BlacklistEntry{
		ID:        r.nextID,
		ClientID:  clientID,
		Until:     until,
		CreatedAt: time.Now(),
	})
	return nil
}

func (r *fakeBlacklistRepo) GetAll(_ context.Context) ([]*models.BlacklistEntry, error) {
	return r.rows, nil
}

func (r *fakeBlacklistRepo) ActiveEntry(ctx context.Context, teleID int64) (*models.BlacklistEntry, error) {
	if r.clients == nil {
		return nil, nil
	}
	client, _ := r.clients.GetByTelegramID(ctx, teleID)
	if client == nil {
		return nil, nil
	}
	for _, e := range r.rows {
		if e.ClientID == client.ID && e.Until.After(time.Now()) {
			return e, nil
		}
	}
	return nil, nil
}

type fakeRatingRepo struct {
	rows   []*models.Rating
	nextID int64
}

func (r *fakeRatingRepo) Create(_ context.Context, rating *models.Rating) error {
	r.nextID++
	rating.ID = r.nextID
	rating.CreatedAt = time.Now()
	r.rows = append(r.rows, rating)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...logger.Field)    {}
func (nopLogger) Error(string, ...logger.Field)   {}
func (nopLogger) Warning(string, ...logger.Field) {}
