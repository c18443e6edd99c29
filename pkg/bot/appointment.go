package bot

import (
	"context"
	"fmt"

	"servicebot/pkg/logger"
	"servicebot/pkg/models"
	"servicebot/service"

	tele "gopkg.in/telebot.v3"
)

func (b *Bot) handleNewRequest(c tele.Context) error {
	ctx := context.Background()
	client, err := b.Stg.Client().GetByTelegramID(ctx, c.Sender().ID)
	if err != nil {
		return nil
	}
	if client == nil {
		return c.Send(msg("register_first"))
	}

	b.Sessions.Set(c.Sender().ID, &DescriptionState{ClientID: client.ID})
	return c.Send(msg("ask_problem"))
}

// handleDescriptionText creates the pending appointment and notifies the
// admin with confirm/decline actions tagged with the appointment id.
func (b *Bot) handleDescriptionText(c tele.Context, state *DescriptionState) error {
	ctx := context.Background()

	appointment, err := b.Svc.Appointment().CreateRequest(ctx, state.ClientID, c.Text())
	if err != nil {
		b.Log.Error("failed to create appointment", logger.Error(err))
		b.Sessions.Clear(c.Sender().ID)
		return c.Send(msg("menu_client"), clientMenu())
	}

	client, _ := b.Stg.Client().GetByID(ctx, state.ClientID)
	if client != nil {
		text := fmt.Sprintf(msg("notif_new"),
			appointment.ID, client.Name, client.City, client.Phone,
			client.ProductType, client.SerialNumber, appointment.Description,
		)
		b.notifyUser(b.Cfg.AdminID, text, confirmationKeyboard(appointment.ID))
	}

	b.Sessions.Clear(c.Sender().ID)
	return c.Send(msg("request_done"), clientMenu())
}

func (b *Bot) handleMyRequests(c tele.Context) error {
	ctx := context.Background()
	client, err := b.Stg.Client().GetByTelegramID(ctx, c.Sender().ID)
	if err != nil {
		return nil
	}
	if client == nil {
		return c.Send(msg("register_first"))
	}

	appointments, err := b.Svc.Appointment().ClientHistory(ctx, client.ID)
	if err != nil || len(appointments) == 0 {
		return c.Send(msg("no_requests"))
	}

	text := "Ваши заявки:\n\n"
	for _, a := range appointments {
		text += fmt.Sprintf("▫️ %s\nСтатус: %s\n\n",
			a.CreatedAt.In(b.Cfg.Location).Format(service.DateLayout), a.Status)
	}
	return c.Send(text)
}

// handleAdminConfirm moves the admin into the date-collection step; the
// appointment id lives in the admin's session until assignment completes.
func (b *Bot) handleAdminConfirm(c tele.Context, appointmentID int64) error {
	b.Sessions.Set(c.Sender().ID, &AssignmentState{Step: AssignDate, AppointmentID: appointmentID})
	c.Edit(fmt.Sprintf("Заявка #%d принята в работу.", appointmentID))
	if err := c.Send(msg("ask_date")); err != nil {
		return err
	}
	return c.Respond()
}

func (b *Bot) handleAssignmentText(c tele.Context, state *AssignmentState) error {
	if state.Step != AssignDate {
		return nil
	}

	date, err := service.ParseDate(c.Text(), b.Cfg.Location)
	if err != nil {
		return c.Send(msg("bad_date"))
	}

	state.Step = AssignSpecialist
	state.Date = date

	// Live query: only specialists available right now get a button. An
	// empty roster yields an empty inline set.
	available, err := b.Stg.Specialist().GetAvailable(context.Background())
	if err != nil {
		b.Log.Error("failed to list available specialists", logger.Error(err))
		return nil
	}

	menu := &tele.ReplyMarkup{}
	var rows []tele.Row
	for _, s := range available {
		rows = append(rows, menu.Row(menu.Data(s.Name, fmt.Sprintf("spec:%d", s.ID))))
	}
	menu.Inline(rows...)
	return c.Send(msg("pick_spec"), menu)
}

// handleSpecialistPick finishes the assignment: one atomic update sets the
// specialist, the date remembered at the previous step, and the approved
// status, then both sides are notified.
func (b *Bot) handleSpecialistPick(c tele.Context, specialistID int64) error {
	state, ok := b.Sessions.Get(c.Sender().ID).(*AssignmentState)
	if !ok || state.Step != AssignSpecialist {
		return c.Respond()
	}

	ctx := context.Background()
	if err := b.Svc.Appointment().Assign(ctx, state.AppointmentID, specialistID, state.Date); err != nil {
		b.Log.Error("failed to assign appointment", logger.Int64("id", state.AppointmentID), logger.Error(err))
		return c.Respond()
	}

	appointment, _ := b.Svc.Appointment().GetByID(ctx, state.AppointmentID)
	specialist, _ := b.Stg.Specialist().GetByID(ctx, specialistID)
	var client *models.Client
	if appointment != nil {
		client, _ = b.Stg.Client().GetByID(ctx, appointment.ClientID)
	}

	dateText := state.Date.In(b.Cfg.Location).Format(service.DateLayout)

	if specialist != nil && client != nil && appointment != nil {
		b.notifyUser(specialist.TelegramID, fmt.Sprintf(msg("notif_spec"),
			dateText, client.Name, client.Phone, client.City,
			client.ProductType, client.SerialNumber, appointment.Description,
		))
		b.notifyUser(client.TelegramID,
			fmt.Sprintf(msg("notif_client"), specialist.Name, specialist.Username, dateText),
			confirmationKeyboard(appointment.ID),
		)
	}

	b.Sessions.Clear(c.Sender().ID)
	c.Edit(msg("assigned"))
	return c.Respond()
}

// handleCancel is the shared terminal transition: admin decline at creation
// and client cancel after approval both land here. The overwrite is
// idempotent, so stale presses converge to canceled.
func (b *Bot) handleCancel(c tele.Context, appointmentID int64) error {
	if err := b.Svc.Appointment().Cancel(context.Background(), appointmentID); err != nil {
		b.Log.Error("failed to cancel appointment", logger.Int64("id", appointmentID), logger.Error(err))
	}
	c.Edit(msg("canceled"))
	return c.Respond()
}

func (b *Bot) handleClientConfirm(c tele.Context, appointmentID int64) error {
	if err := b.Svc.Appointment().ConfirmByClient(context.Background(), appointmentID); err != nil {
		b.Log.Error("failed to record client confirmation", logger.Int64("id", appointmentID), logger.Error(err))
	}
	c.Edit(msg("client_ok"))
	return c.Respond()
}
