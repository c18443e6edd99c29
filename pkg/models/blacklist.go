package models

import "time"

// BlacklistEntry blocks a client from the registration gate while Until is
// in the future. Rows are never deleted; expiry is evaluated at check time.
type BlacklistEntry struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	Until     time.Time `json:"until"`
	CreatedAt time.Time `json:"created_at"`
}
