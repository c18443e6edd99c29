package bot

import (
	"sync"
	"time"

	"servicebot/pkg/models"
)

// Conversation is the per-user dialog state. Each flow carries exactly the
// fields that are valid for its current step, so there is no shared untyped
// scratch bag.
type Conversation interface {
	conversation()
}

type RegStep int

const (
	RegCodeword RegStep = iota
	RegName
	RegCity
	RegWorkplace
	RegProductType
	RegSerial
	RegPhone
)

// RegistrationState collects client fields one step at a time, in fixed
// positional order.
type RegistrationState struct {
	Step  RegStep
	Draft models.Client
}

func (*RegistrationState) conversation() {}

// DescriptionState waits for a registered client's free-text problem
// description.
type DescriptionState struct {
	ClientID int64
}

func (*DescriptionState) conversation() {}

type AssignStep int

const (
	AssignDate AssignStep = iota
	AssignSpecialist
)

// AssignmentState is the admin's side of scheduling: the appointment id is
// held here, not on the appointment row, for the duration of the flow.
type AssignmentState struct {
	Step          AssignStep
	AppointmentID int64
	Date          time.Time
}

func (*AssignmentState) conversation() {}

// Sessions keeps per-user conversation state. Scoped by telegram id, never
// shared between users; process-lifetime only.
type Sessions struct {
	mu     sync.RWMutex
	byUser map[int64]Conversation
}

func NewSessions() *Sessions {
	return &Sessions{byUser: make(map[int64]Conversation)}
}

func (s *Sessions) Get(userID int64) Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byUser[userID]
}

func (s *Sessions) Set(userID int64, c Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[userID] = c
}

func (s *Sessions) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
}
