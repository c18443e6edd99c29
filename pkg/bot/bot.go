package bot

import (
	"context"
	"fmt"
	"time"

	"servicebot/config"
	"servicebot/pkg/logger"
	"servicebot/service"
	"servicebot/storage"

	tele "gopkg.in/telebot.v3"
)

// Menu button labels, matched exactly by telebot.
const (
	btnNewRequest  = "📝 Новая заявка"
	btnMyRequests  = "📋 Мои заявки"
	btnStats       = "📊 Статистика"
	btnAllRecords  = "📅 Записи"
	btnBlacklist   = "🔨 ЧС"
	btnSpecialists = "👥 Специалисты"
	btnReady       = "✅ Готов к работе"
	btnSchedule    = "📅 Расписание"
)

type Bot struct {
	Bot      *tele.Bot
	Cfg      *config.Config
	Log      logger.ILogger
	Stg      storage.IStorage
	Svc      service.IServiceManager
	Sessions *Sessions
}

func New(cfg *config.Config, stg storage.IStorage, svc service.IServiceManager, log logger.ILogger) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.TelegramBotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}
	bot := &Bot{
		Bot:      b,
		Cfg:      cfg,
		Log:      log,
		Stg:      stg,
		Svc:      svc,
		Sessions: NewSessions(),
	}
	bot.registerHandlers()
	return bot, nil
}

func (b *Bot) Start() {
	b.Log.Info("🤖 Bot started...")
	b.Bot.Start()
}

var messages = map[string]map[string]string{
	"ru": {
		"welcome":        "Добро пожаловать! Введите кодовое слово:",
		"bad_codeword":   "❌ Неверное кодовое слово!",
		"blacklisted":    "🚫 Вы в черном списке!",
		"ask_name":       "Введите ваше полное имя:",
		"ask_city":       "Введите ваш город:",
		"ask_workplace":  "Введите место работы:",
		"ask_product":    "Введите тип изделия:",
		"ask_serial":     "Введите серийный номер:",
		"ask_phone":      "Введите ваш телефон:",
		"registered":     "✅ Регистрация завершена!",
		"menu_client":    "Главное меню:",
		"menu_admin":     "Панель администратора",
		"menu_spec":      "Панель специалиста",
		"register_first": "Сначала зарегистрируйтесь: отправьте /start и введите кодовое слово.",
		"ask_problem":    "Опишите проблему:",
		"request_done":   "✅ Заявка создана!",
		"no_requests":    "У вас нет активных заявок",
		"notif_new":      "🆕 Новая заявка #%d\n👤 %s, %s\n📞 %s\n🔧 %s (SN: %s)\n📝 %s",
		"ask_date":       "Введите дату и время (ДД.ММ.ГГГГ ЧЧ:ММ):",
		"bad_date":       "❌ Неверный формат даты! Пример: 15.06.2025 14:00",
		"pick_spec":      "Выберите специалиста:",
		"assigned":       "✅ Заявка назначена.",
		"canceled":       "❌ Заявка отменена.",
		"client_ok":      "✅ Вы подтвердили запись.",
		"notif_spec":     "📌 Новая запись на %s\n👤 %s\n📞 %s\n🏙 %s\n🔧 %s (SN: %s)\n📝 %s",
		"notif_client":   "✅ Ваша заявка подтверждена!\nСпециалист: %s (@%s)\nДата: %s",
		"no_imminent":    "❌ Нет активных записей",
		"available":      "🟢 Доступен",
		"busy":           "🔴 Занят",
		"no_schedule":    "Нет записей",
		"rated":          "Спасибо за оценку!",
		"confirm_btn":    "✅ Подтвердить",
		"cancel_btn":     "❌ Отменить",
	},
}

func msg(key string) string {
	return messages["ru"][key]
}

func (b *Bot) registerHandlers() {
	b.Bot.Handle("/start", b.handleStart)

	b.Bot.Handle(btnNewRequest, b.handleNewRequest)
	b.Bot.Handle(btnMyRequests, b.handleMyRequests)

	b.Bot.Handle(btnStats, b.handleAdminStats)
	b.Bot.Handle(btnAllRecords, b.handleAdminRecords)
	b.Bot.Handle(btnBlacklist, b.handleAdminBlacklist)
	b.Bot.Handle(btnSpecialists, b.handleAdminSpecialists)

	b.Bot.Handle(btnReady, b.handleToggleAvailability)
	b.Bot.Handle(btnSchedule, b.handleSchedule)

	b.Bot.Handle(tele.OnCallback, b.handleCallback)
	b.Bot.Handle(tele.OnText, b.handleText)
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID

	role, err := b.Svc.Role().Resolve(ctx, userID)
	if err != nil {
		b.Log.Error("failed to resolve role", logger.Int64("user_id", userID), logger.Error(err))
		return nil
	}

	switch role {
	case service.RoleAdmin:
		return c.Send(msg("menu_admin"), adminMenu())
	case service.RoleSpecialist:
		hasWork, _ := b.Svc.Specialist().HasApprovedWork(ctx, userID)
		return c.Send(msg("menu_spec"), specialistMenu(hasWork))
	default:
		// Client and unknown users both pass through the gate: blacklist
		// first, then the codeword prompt.
		allowed, err := b.registrationAllowed(ctx, userID)
		if err != nil {
			b.Log.Error("blacklist check failed", logger.Int64("user_id", userID), logger.Error(err))
			return nil
		}
		if !allowed {
			return c.Send(msg("blacklisted"), tele.RemoveKeyboard)
		}
		b.Sessions.Set(userID, &RegistrationState{Step: RegCodeword})
		return c.Send(msg("welcome"), tele.RemoveKeyboard)
	}
}

func (b *Bot) handleText(c tele.Context) error {
	switch state := b.Sessions.Get(c.Sender().ID).(type) {
	case *RegistrationState:
		return b.handleRegistrationText(c, state)
	case *DescriptionState:
		return b.handleDescriptionText(c, state)
	case *AssignmentState:
		return b.handleAssignmentText(c, state)
	}
	return nil
}

func (b *Bot) handleCallback(c tele.Context) error {
	action, ok := ParseAction(c.Callback().Data)
	if !ok {
		return c.Respond()
	}

	ctx := context.Background()
	role, err := b.Svc.Role().Resolve(ctx, c.Sender().ID)
	if err != nil {
		b.Log.Error("failed to resolve role", logger.Error(err))
		return c.Respond()
	}

	switch {
	case action.Kind == ActConfirm && role == service.RoleAdmin:
		return b.handleAdminConfirm(c, action.AppointmentID)
	case action.Kind == ActConfirm && role == service.RoleClient:
		return b.handleClientConfirm(c, action.AppointmentID)
	case action.Kind == ActCancel && (role == service.RoleAdmin || role == service.RoleClient):
		return b.handleCancel(c, action.AppointmentID)
	case action.Kind == ActSpecialist && role == service.RoleAdmin:
		return b.handleSpecialistPick(c, action.SpecialistID)
	case action.Kind == ActRate && role == service.RoleSpecialist:
		return b.handleRate(c, action.AppointmentID, action.Score)
	}

	// Role-gated actions from anyone else are deliberate no-ops.
	return c.Respond()
}

func clientMenu() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnNewRequest)),
		menu.Row(menu.Text(btnMyRequests)),
	)
	return menu
}

func adminMenu() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnStats), menu.Text(btnAllRecords)),
		menu.Row(menu.Text(btnBlacklist), menu.Text(btnSpecialists)),
	)
	return menu
}

func specialistMenu(hasWork bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	if hasWork {
		menu.Reply(
			menu.Row(menu.Text(btnReady)),
			menu.Row(menu.Text(btnSchedule)),
		)
	} else {
		menu.Reply(menu.Row(menu.Text(btnSchedule)))
	}
	return menu
}

func confirmationKeyboard(appointmentID int64) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(
		menu.Data(msg("confirm_btn"), fmt.Sprintf("confirm:%d", appointmentID)),
		menu.Data(msg("cancel_btn"), fmt.Sprintf("cancel:%d", appointmentID)),
	))
	return menu
}

func ratingKeyboard(appointmentID int64) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	var row []tele.Btn
	for score := 1; score <= 5; score++ {
		row = append(row, menu.Data(fmt.Sprintf("%d", score), fmt.Sprintf("rate:%d:%d", score, appointmentID)))
	}
	menu.Inline(menu.Row(row...))
	return menu
}
