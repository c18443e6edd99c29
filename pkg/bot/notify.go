package bot

import (
	"servicebot/pkg/logger"

	tele "gopkg.in/telebot.v3"
)

// notifyUser is best-effort delivery: failures are logged and swallowed,
// they never roll back the store mutation that preceded them.
func (b *Bot) notifyUser(teleID int64, text string, opts ...interface{}) {
	if teleID == 0 {
		return
	}
	if _, err := b.Bot.Send(&tele.User{ID: teleID}, text, opts...); err != nil {
		b.Log.Warning("notification delivery failed",
			logger.Int64("telegram_id", teleID),
			logger.Error(err),
		)
	}
}
