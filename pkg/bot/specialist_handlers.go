package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicebot/pkg/logger"
	"servicebot/pkg/models"
	"servicebot/service"

	tele "gopkg.in/telebot.v3"
)

func (b *Bot) handleToggleAvailability(c tele.Context) error {
	ctx := context.Background()
	role, err := b.Svc.Role().Resolve(ctx, c.Sender().ID)
	if err != nil || role != service.RoleSpecialist {
		return nil
	}

	spec, err := b.Svc.Specialist().ToggleAvailability(ctx, c.Sender().ID, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrNoImminentAppointment) {
			return c.Send(msg("no_imminent"))
		}
		b.Log.Error("failed to toggle availability", logger.Int64("user_id", c.Sender().ID), logger.Error(err))
		return nil
	}

	if spec.IsAvailable {
		return c.Send(msg("available"))
	}
	return c.Send(msg("busy"))
}

func (b *Bot) handleSchedule(c tele.Context) error {
	ctx := context.Background()
	spec, err := b.Stg.Specialist().GetByTelegramID(ctx, c.Sender().ID)
	if err != nil || spec == nil {
		return nil
	}

	appointments, err := b.Svc.Appointment().Schedule(ctx, spec.ID)
	if err != nil || len(appointments) == 0 {
		return c.Send(msg("no_schedule"))
	}

	for _, a := range appointments {
		client, _ := b.Stg.Client().GetByID(ctx, a.ClientID)
		name := "—"
		if client != nil {
			name = client.Name
		}
		text := fmt.Sprintf("▫️ #%d | %s", a.ID, a.Status)
		if a.Date != nil {
			text = fmt.Sprintf("▫️ %s - %s",
				a.Date.In(b.Cfg.Location).Format("02.01 15:04"), name)
		}
		if a.Status == models.AppointmentApproved {
			c.Send(text, ratingKeyboard(a.ID))
		} else {
			c.Send(text)
		}
	}
	return nil
}

func (b *Bot) handleRate(c tele.Context, appointmentID int64, score int) error {
	if err := b.Svc.Appointment().RateClient(context.Background(), appointmentID, score); err != nil {
		b.Log.Error("failed to rate client", logger.Int64("id", appointmentID), logger.Error(err))
		return c.Respond()
	}
	c.Edit(msg("rated"))
	return c.Respond()
}
