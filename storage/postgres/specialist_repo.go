package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"servicebot/pkg/logger"
	"servicebot/pkg/models"
	"servicebot/storage"
)

type specialistRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewSpecialistRepo(db *pgxpool.Pool, log logger.ILogger) storage.ISpecialistStorage {
	return &specialistRepo{db: db, log: log}
}

const specialistColumns = `id, telegram_id, name, username, is_available, created_at`

// Upsert syncs one roster entry. Existing rows keep their is_available flag,
// only name and username follow the roster.
func (r *specialistRepo) Upsert(ctx context.Context, teleID int64, name, username string) error {
	query := `
		INSERT INTO specialists (telegram_id, name, username)
		VALUES ($1, $2, $3)
		ON CONFLICT (telegram_id) DO UPDATE
		SET name = EXCLUDED.name, username = EXCLUDED.username
	`
	_, err := r.db.Exec(ctx, query, teleID, name, username)
	if err != nil {
		r.log.Error("failed to upsert specialist", logger.Int64("telegram_id", teleID), logger.Error(err))
	}
	return err
}

func (r *specialistRepo) GetByTelegramID(ctx context.Context, teleID int64) (*models.Specialist, error) {
	var s models.Specialist
	query := `SELECT ` + specialistColumns + ` FROM specialists WHERE telegram_id = $1`
	err := r.db.QueryRow(ctx, query, teleID).Scan(
		&s.ID, &s.TelegramID, &s.Name, &s.Username, &s.IsAvailable, &s.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get specialist", logger.Error(err))
		return nil, err
	}
	return &s, nil
}

func (r *specialistRepo) GetByID(ctx context.Context, id int64) (*models.Specialist, error) {
	var s models.Specialist
	query := `SELECT ` + specialistColumns + ` FROM specialists WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.TelegramID, &s.Name, &s.Username, &s.IsAvailable, &s.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get specialist by id", logger.Error(err))
		return nil, err
	}
	return &s, nil
}

func (r *specialistRepo) GetAll(ctx context.Context) ([]*models.Specialist, error) {
	return r.scanSpecialists(ctx, `SELECT `+specialistColumns+` FROM specialists ORDER BY name`)
}

func (r *specialistRepo) GetAvailable(ctx context.Context) ([]*models.Specialist, error) {
	return r.scanSpecialists(ctx, `SELECT `+specialistColumns+` FROM specialists WHERE is_available = true ORDER BY name`)
}

func (r *specialistRepo) SetAvailability(ctx context.Context, id int64, available bool) error {
	_, err := r.db.Exec(ctx, "UPDATE specialists SET is_available=$1 WHERE id=$2", available, id)
	return err
}

func (r *specialistRepo) scanSpecialists(ctx context.Context, query string, args ...interface{}) ([]*models.Specialist, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var specialists []*models.Specialist
	for rows.Next() {
		var s models.Specialist
		err := rows.Scan(&s.ID, &s.TelegramID, &s.Name, &s.Username, &s.IsAvailable, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		specialists = append(specialists, &s)
	}
	return specialists, nil
}
