package bot

import (
	"context"
	"fmt"

	"servicebot/pkg/models"
	"servicebot/service"

	tele "gopkg.in/telebot.v3"
)

func (b *Bot) isAdmin(c tele.Context) bool {
	return b.Cfg.AdminID != 0 && c.Sender().ID == b.Cfg.AdminID
}

func (b *Bot) handleAdminStats(c tele.Context) error {
	if !b.isAdmin(c) {
		return nil
	}

	ctx := context.Background()
	clients, _ := b.Stg.Client().Count(ctx)
	approved, _ := b.Stg.Appointment().CountByStatus(ctx, models.AppointmentApproved)
	return c.Send(fmt.Sprintf("📊 Статистика:\nКлиентов: %d\nАктивных заявок: %d", clients, approved))
}

func (b *Bot) handleAdminRecords(c tele.Context) error {
	if !b.isAdmin(c) {
		return nil
	}

	appointments, err := b.Stg.Appointment().GetAll(context.Background())
	if err != nil || len(appointments) == 0 {
		return c.Send("Записей нет")
	}

	for _, a := range appointments {
		text := fmt.Sprintf("📋 #%d | Статус: %s", a.ID, a.Status)
		if a.Date != nil {
			text += fmt.Sprintf("\n📅 %s", a.Date.In(b.Cfg.Location).Format(service.DateLayout))
		}
		text += fmt.Sprintf("\n📝 %s", a.Description)

		if a.Status == models.AppointmentPending || a.Status == models.AppointmentApproved {
			menu := &tele.ReplyMarkup{}
			menu.Inline(menu.Row(menu.Data(msg("cancel_btn"), fmt.Sprintf("cancel:%d", a.ID))))
			c.Send(text, menu)
		} else {
			c.Send(text)
		}
	}
	return nil
}

func (b *Bot) handleAdminBlacklist(c tele.Context) error {
	if !b.isAdmin(c) {
		return nil
	}

	entries, err := b.Stg.Blacklist().GetAll(context.Background())
	if err != nil || len(entries) == 0 {
		return c.Send("Список пуст")
	}

	text := "Черный список:\n"
	for _, e := range entries {
		text += fmt.Sprintf("ID %d до %s\n", e.ClientID, e.Until.In(b.Cfg.Location).Format("02.01.2006"))
	}
	return c.Send(text)
}

func (b *Bot) handleAdminSpecialists(c tele.Context) error {
	if !b.isAdmin(c) {
		return nil
	}

	specialists, err := b.Stg.Specialist().GetAll(context.Background())
	if err != nil || len(specialists) == 0 {
		return c.Send("Нет специалистов")
	}

	text := "Специалисты:\n"
	for _, s := range specialists {
		mark := "🔴"
		if s.IsAvailable {
			mark = "🟢"
		}
		text += fmt.Sprintf("▫️ %s (@%s) - %s\n", s.Name, s.Username, mark)
	}
	return c.Send(text)
}
