package storage

import (
	"context"
	"time"

	"servicebot/pkg/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type IStorage interface {
	Client() IClientStorage
	Specialist() ISpecialistStorage
	Appointment() IAppointmentStorage
	Blacklist() IBlacklistStorage
	Rating() IRatingStorage
	Close()
	GetPool() *pgxpool.Pool
}

type IClientStorage interface {
	Create(ctx context.Context, client *models.Client) (*models.Client, error)
	GetByTelegramID(ctx context.Context, teleID int64) (*models.Client, error)
	GetByID(ctx context.Context, id int64) (*models.Client, error)
	GetAll(ctx context.Context) ([]*models.Client, error)
	Count(ctx context.Context) (int, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	ApplyRating(ctx context.Context, id int64, score int) error
}

type ISpecialistStorage interface {
	Upsert(ctx context.Context, teleID int64, name, username string) error
	GetByTelegramID(ctx context.Context, teleID int64) (*models.Specialist, error)
	GetByID(ctx context.Context, id int64) (*models.Specialist, error)
	GetAll(ctx context.Context) ([]*models.Specialist, error)
	GetAvailable(ctx context.Context) ([]*models.Specialist, error)
	SetAvailability(ctx context.Context, id int64, available bool) error
}

type IAppointmentStorage interface {
	Create(ctx context.Context, clientID int64, description string) (*models.Appointment, error)
	GetByID(ctx context.Context, id int64) (*models.Appointment, error)
	GetAll(ctx context.Context) ([]*models.Appointment, error)
	GetByClient(ctx context.Context, clientID int64) ([]*models.Appointment, error)
	GetBySpecialist(ctx context.Context, specialistID int64) ([]*models.Appointment, error)
	GetApproved(ctx context.Context) ([]*models.Appointment, error)
	Assign(ctx context.Context, id, specialistID int64, date time.Time) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	SetClientApproved(ctx context.Context, id int64, approved bool) error
	SetSpecialistApproved(ctx context.Context, id int64, approved bool) error
	CountApproved(ctx context.Context, specialistID int64) (int, error)
	CountApprovedInWindow(ctx context.Context, specialistID int64, from, to time.Time) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

type IBlacklistStorage interface {
	Create(ctx context.Context, clientID int64, until time.Time) error
	GetAll(ctx context.Context) ([]*models.BlacklistEntry, error)
	ActiveEntry(ctx context.Context, teleID int64) (*models.BlacklistEntry, error)
}

type IRatingStorage interface {
	Create(ctx context.Context, rating *models.Rating) error
}
