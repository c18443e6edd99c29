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

type blacklistRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewBlacklistRepo(db *pgxpool.Pool, log logger.ILogger) storage.IBlacklistStorage {
	return &blacklistRepo{db: db, log: log}
}

func (r *blacklistRepo) Create(ctx context.Context, clientID int64, until time.Time) error {
	_, err := r.db.Exec(ctx, "INSERT INTO blacklist (client_id, until) VALUES ($1, $2)", clientID, until)
	if err != nil {
		r.log.Error("failed to create blacklist entry", logger.Int64("client_id", clientID), logger.Error(err))
	}
	return err
}

func (r *blacklistRepo) GetAll(ctx context.Context) ([]*models.BlacklistEntry, error) {
	query := `SELECT id, client_id, until, created_at FROM blacklist ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.BlacklistEntry
	for rows.Next() {
		var e models.BlacklistEntry
		if err := rows.Scan(&e.ID, &e.ClientID, &e.Until, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, nil
}

// ActiveEntry returns an unexpired entry for the given telegram id, if any.
// Rows are never deleted; expiry is evaluated here, at read time.
func (r *blacklistRepo) ActiveEntry(ctx context.Context, teleID int64) (*models.BlacklistEntry, error) {
	var e models.BlacklistEntry
	query := `
		SELECT b.id, b.client_id, b.until, b.created_at
		FROM blacklist b
		JOIN clients c ON c.id = b.client_id
		WHERE c.telegram_id = $1 AND b.until > now()
		ORDER BY b.until DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, teleID).Scan(&e.ID, &e.ClientID, &e.Until, &e.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to check blacklist", logger.Int64("telegram_id", teleID), logger.Error(err))
		return nil, err
	}
	return &e, nil
}
