package models

import "time"

const (
	ClientStatusActive      = "active"
	ClientStatusBlacklisted = "blacklisted"
)

type Client struct {
	ID           int64     `json:"id"`
	TelegramID   int64     `json:"telegram_id"`
	Name         string    `json:"name"`
	City         string    `json:"city"`
	Workplace    string    `json:"workplace"`
	ProductType  string    `json:"product_type"`
	SerialNumber string    `json:"serial_number"`
	Phone        string    `json:"phone"`
	Status       string    `json:"status"`
	Rating       float64   `json:"rating"`
	RatingsCount int       `json:"ratings_count"`
	CreatedAt    time.Time `json:"created_at"`
}
