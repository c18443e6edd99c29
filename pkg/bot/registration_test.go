package bot

import (
	"context"
	"testing"
	"time"

	"servicebot/pkg/models"
	"servicebot/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestRegistrationCollectsFieldsInOrder(t *testing.T) {
	state := &RegistrationState{}

	prompt, done := advanceRegistrationStep(state, "sesame", 300, "sesame")
	if done || prompt != "ask_name" {
		t.Fatalf("codeword step: prompt=%s done=%v", prompt, done)
	}

	inputs := []struct {
		text       string
		nextPrompt string
	}{
		{"Ivan Petrov", "ask_city"},
		{"Tver", "ask_workplace"},
		{"Plant 9", "ask_product"},
		{"Pump", "ask_serial"},
		{"SN-42", "ask_phone"},
	}
	for _, in := range inputs {
		prompt, done = advanceRegistrationStep(state, "sesame", 300, in.text)
		if done || prompt != in.nextPrompt {
			t.Fatalf("input %q: prompt=%s done=%v", in.text, prompt, done)
		}
	}

	prompt, done = advanceRegistrationStep(state, "sesame", 300, "+7 900 000-00-00")
	if !done || prompt != "registered" {
		t.Fatalf("final step: prompt=%s done=%v", prompt, done)
	}

	want := models.Client{
		TelegramID:   300,
		Name:         "Ivan Petrov",
		City:         "Tver",
		Workplace:    "Plant 9",
		ProductType:  "Pump",
		SerialNumber: "SN-42",
		Phone:        "+7 900 000-00-00",
	}
	if state.Draft != want {
		t.Errorf("draft = %+v, want %+v", state.Draft, want)
	}
}

func TestWrongCodewordKeepsState(t *testing.T) {
	state := &RegistrationState{}

	for i := 0; i < 5; i++ {
		prompt, done := advanceRegistrationStep(state, "sesame", 300, "open up")
		if done || prompt != "bad_codeword" {
			t.Fatalf("attempt %d: prompt=%s done=%v", i+1, prompt, done)
		}
		if state.Step != RegCodeword {
			t.Fatalf("attempt %d: step advanced to %d", i+1, state.Step)
		}
	}

	// Leading/trailing whitespace is forgiven, the word itself is not.
	prompt, done := advanceRegistrationStep(state, "sesame", 300, "  sesame  ")
	if done || prompt != "ask_name" {
		t.Fatalf("trimmed codeword: prompt=%s done=%v", prompt, done)
	}
}

// gateStorage implements storage.IStorage with just enough behavior for the
// blacklist entry gate.
type gateStorage struct {
	blacklist gateBlacklist
}

type gateBlacklist struct {
	entries map[int64]time.Time // telegram id -> until
}

func (g gateBlacklist) Create(context.Context, int64, time.Time) error { return nil }
func (g gateBlacklist) GetAll(context.Context) ([]*models.BlacklistEntry, error) {
	return nil, nil
}
func (g gateBlacklist) ActiveEntry(_ context.Context, teleID int64) (*models.BlacklistEntry, error) {
	until, ok := g.entries[teleID]
	if !ok || !until.After(time.Now()) {
		return nil, nil
	}
	return &models.BlacklistEntry{ClientID: 1, Until: until}, nil
}

func (g *gateStorage) Client() storage.IClientStorage           { return nil }
func (g *gateStorage) Specialist() storage.ISpecialistStorage   { return nil }
func (g *gateStorage) Appointment() storage.IAppointmentStorage { return nil }
func (g *gateStorage) Blacklist() storage.IBlacklistStorage     { return g.blacklist }
func (g *gateStorage) Rating() storage.IRatingStorage           { return nil }
func (g *gateStorage) Close()                                   {}
func (g *gateStorage) GetPool() *pgxpool.Pool                   { return nil }

func TestBlacklistGate(t *testing.T) {
	ctx := context.Background()
	b := &Bot{
		Stg: &gateStorage{blacklist: gateBlacklist{entries: map[int64]time.Time{
			300: time.Now().Add(24 * time.Hour), // active ban
			301: time.Now().Add(-time.Minute),   // expired ban
		}}},
		Sessions: NewSessions(),
	}

	allowed, err := b.registrationAllowed(ctx, 300)
	if err != nil {
		t.Fatal(err)
	}
	if allowed {
		t.Error("active blacklist entry must block registration")
	}

	allowed, err = b.registrationAllowed(ctx, 301)
	if err != nil {
		t.Fatal(err)
	}
	if !allowed {
		t.Error("expired blacklist entry must not block registration")
	}

	allowed, err = b.registrationAllowed(ctx, 302)
	if err != nil {
		t.Fatal(err)
	}
	if !allowed {
		t.Error("unlisted user must pass the gate")
	}
}
