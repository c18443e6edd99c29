package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"servicebot/pkg/logger"
	"servicebot/pkg/models"
	"servicebot/storage"
)

type appointmentRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewAppointmentRepo(db *pgxpool.Pool, log logger.ILogger) storage.IAppointmentStorage {
	return &appointmentRepo{db: db, log: log}
}

const appointmentColumns = `id, client_id, specialist_id, date, created_at, status, description, client_approved, specialist_approved, decline_reason`

func (r *appointmentRepo) Create(ctx context.Context, clientID int64, description string) (*models.Appointment, error) {
	var a models.Appointment
	query := `
		INSERT INTO appointments (client_id, description, status)
		VALUES ($1, $2, 'pending')
		RETURNING ` + appointmentColumns + `
	`
	err := r.db.QueryRow(ctx, query, clientID, description).Scan(
		&a.ID, &a.ClientID, &a.SpecialistID, &a.Date, &a.CreatedAt, &a.Status,
		&a.Description, &a.ClientApproved, &a.SpecialistApproved, &a.DeclineReason,
	)
	if err != nil {
		r.log.Error("failed to create appointment", logger.Error(err))
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id int64) (*models.Appointment, error) {
	var a models.Appointment
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.ClientID, &a.SpecialistID, &a.Date, &a.CreatedAt, &a.Status,
		&a.Description, &a.ClientApproved, &a.SpecialistApproved, &a.DeclineReason,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get appointment by id", logger.Int64("id", id), logger.Error(err))
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepo) GetAll(ctx context.Context) ([]*models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments ORDER BY created_at DESC`
	return r.scanAppointments(ctx, query)
}

func (r *appointmentRepo) GetByClient(ctx context.Context, clientID int64) ([]*models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE client_id = $1 ORDER BY created_at DESC`
	return r.scanAppointments(ctx, query, clientID)
}

func (r *appointmentRepo) GetBySpecialist(ctx context.Context, specialistID int64) ([]*models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE specialist_id = $1 ORDER BY date`
	return r.scanAppointments(ctx, query, specialistID)
}

func (r *appointmentRepo) GetApproved(ctx context.Context) ([]*models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE status = 'approved' ORDER BY date`
	return r.scanAppointments(ctx, query)
}

// Assign sets specialist, date and approved status in a single statement.
func (r *appointmentRepo) Assign(ctx context.Context, id, specialistID int64, date time.Time) error {
	_, err := r.db.Exec(ctx,
		"UPDATE appointments SET specialist_id = $1, date = $2, status = 'approved' WHERE id = $3",
		specialistID, date, id,
	)
	if err != nil {
		r.log.Error("failed to assign appointment", logger.Int64("id", id), logger.Error(err))
	}
	return err
}

// UpdateStatus is a direct overwrite: repeating it with the same status is a
// no-op, which makes stale button presses harmless.
func (r *appointmentRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := r.db.Exec(ctx, "UPDATE appointments SET status = $1 WHERE id = $2", status, id)
	return err
}

func (r *appointmentRepo) SetClientApproved(ctx context.Context, id int64, approved bool) error {
	_, err := r.db.Exec(ctx, "UPDATE appointments SET client_approved = $1 WHERE id = $2", approved, id)
	return err
}

func (r *appointmentRepo) SetSpecialistApproved(ctx context.Context, id int64, approved bool) error {
	_, err := r.db.Exec(ctx, "UPDATE appointments SET specialist_approved = $1 WHERE id = $2", approved, id)
	return err
}

func (r *appointmentRepo) CountApproved(ctx context.Context, specialistID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT count(*) FROM appointments WHERE specialist_id = $1 AND status = 'approved'",
		specialistID,
	).Scan(&count)
	return count, err
}

func (r *appointmentRepo) CountApprovedInWindow(ctx context.Context, specialistID int64, from, to time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT count(*) FROM appointments WHERE specialist_id = $1 AND status = 'approved' AND date >= $2 AND date <= $3",
		specialistID, from, to,
	).Scan(&count)
	return count, err
}

func (r *appointmentRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM appointments WHERE status = $1", status).Scan(&count)
	return count, err
}

func (r *appointmentRepo) scanAppointments(ctx context.Context, query string, args ...interface{}) ([]*models.Appointment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []*models.Appointment
	for rows.Next() {
		var a models.Appointment
		err := rows.Scan(
			&a.ID, &a.ClientID, &a.SpecialistID, &a.Date, &a.CreatedAt, &a.Status,
			&a.Description, &a.ClientApproved, &a.SpecialistApproved, &a.DeclineReason,
		)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, &a)
	}
	return appointments, nil
}
