package models

import "time"

// Rating is append-only.
type Rating struct {
	ID           int64     `json:"id"`
	ClientID     int64     `json:"client_id"`
	SpecialistID int64     `json:"specialist_id"`
	Score        int       `json:"score"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}
