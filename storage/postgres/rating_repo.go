package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"servicebot/pkg/logger"
	"servicebot/pkg/models"
	"servicebot/storage"
)

type ratingRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewRatingRepo(db *pgxpool.Pool, log logger.ILogger) storage.IRatingStorage {
	return &ratingRepo{db: db, log: log}
}

func (r *ratingRepo) Create(ctx context.Context, rating *models.Rating) error {
	query := `
		INSERT INTO ratings (client_id, specialist_id, score, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		rating.ClientID, rating.SpecialistID, rating.Score, rating.Comment,
	).Scan(&rating.ID, &rating.CreatedAt)
	if err != nil {
		r.log.Error("failed to create rating", logger.Error(err))
	}
	return err
}
