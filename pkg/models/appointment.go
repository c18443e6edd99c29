package models

import "time"

const (
	AppointmentPending   = "pending"
	AppointmentApproved  = "approved"
	AppointmentCompleted = "completed"
	AppointmentCanceled  = "canceled"
)

// Appointment connects a client's service request to a specialist and a
// scheduled time. SpecialistID and Date stay nil until the admin assignment
// step sets both together with status=approved.
type Appointment struct {
	ID                 int64      `json:"id"`
	ClientID           int64      `json:"client_id"`
	SpecialistID       *int64     `json:"specialist_id"`
	Date               *time.Time `json:"date"`
	CreatedAt          time.Time  `json:"created_at"`
	Status             string     `json:"status"`
	Description        string     `json:"description"`
	ClientApproved     *bool      `json:"client_approved"`
	SpecialistApproved *bool      `json:"specialist_approved"`
	DeclineReason      *string    `json:"decline_reason"`
}
