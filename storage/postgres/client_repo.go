package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"servicebot/pkg/logger"
	"servicebot/pkg/models"
	"servicebot/storage"
)

type clientRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewClientRepo(db *pgxpool.Pool, log logger.ILogger) storage.IClientStorage {
	return &clientRepo{db: db, log: log}
}

const clientColumns = `id, telegram_id, name, city, workplace, product_type, serial_number, phone, status, rating, ratings_count, created_at`

func (r *clientRepo) Create(ctx context.Context, client *models.Client) (*models.Client, error) {
	query := `
		INSERT INTO clients (telegram_id, name, city, workplace, product_type, serial_number, phone, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'active')
		RETURNING id, status, rating, ratings_count, created_at
	`
	err := r.db.QueryRow(ctx, query,
		client.TelegramID,
		client.Name,
		client.City,
		client.Workplace,
		client.ProductType,
		client.SerialNumber,
		client.Phone,
	).Scan(&client.ID, &client.Status, &client.Rating, &client.RatingsCount, &client.CreatedAt)

	if err != nil {
		r.log.Error("failed to create client", logger.Error(err))
		return nil, err
	}
	return client, nil
}

func (r *clientRepo) GetByTelegramID(ctx context.Context, teleID int64) (*models.Client, error) {
	var c models.Client
	query := `SELECT ` + clientColumns + ` FROM clients WHERE telegram_id = $1`
	err := r.db.QueryRow(ctx, query, teleID).Scan(
		&c.ID, &c.TelegramID, &c.Name, &c.City, &c.Workplace, &c.ProductType,
		&c.SerialNumber, &c.Phone, &c.Status, &c.Rating, &c.RatingsCount, &c.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get client", logger.Error(err))
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	var c models.Client
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.TelegramID, &c.Name, &c.City, &c.Workplace, &c.ProductType,
		&c.SerialNumber, &c.Phone, &c.Status, &c.Rating, &c.RatingsCount, &c.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get client by id", logger.Error(err))
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) GetAll(ctx context.Context) ([]*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		var c models.Client
		err := rows.Scan(
			&c.ID, &c.TelegramID, &c.Name, &c.City, &c.Workplace, &c.ProductType,
			&c.SerialNumber, &c.Phone, &c.Status, &c.Rating, &c.RatingsCount, &c.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		clients = append(clients, &c)
	}
	return clients, nil
}

func (r *clientRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM clients").Scan(&count)
	return count, err
}

func (r *clientRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := r.db.Exec(ctx, "UPDATE clients SET status=$1 WHERE id=$2", status, id)
	return err
}

// ApplyRating folds a new score into the stored aggregate.
func (r *clientRepo) ApplyRating(ctx context.Context, id int64, score int) error {
	query := `
		UPDATE clients
		SET rating = (rating * ratings_count + $1) / (ratings_count + 1),
		    ratings_count = ratings_count + 1
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, score, id)
	if err != nil {
		r.log.Error("failed to apply rating", logger.Int64("client_id", id), logger.Error(err))
	}
	return err
}
