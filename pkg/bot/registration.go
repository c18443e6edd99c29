package bot

import (
	"context"
	"strings"

	"servicebot/pkg/logger"

	tele "gopkg.in/telebot.v3"
)

// registrationAllowed is the entry gate: a user with an unexpired blacklist
// entry never reaches the codeword prompt.
func (b *Bot) registrationAllowed(ctx context.Context, userID int64) (bool, error) {
	entry, err := b.Stg.Blacklist().ActiveEntry(ctx, userID)
	if err != nil {
		return false, err
	}
	return entry == nil, nil
}

// advanceRegistrationStep applies one text input to the registration state
// and returns the key of the next prompt plus whether the flow finished.
// The codeword must exact-match after trimming; a mismatch leaves the state
// unchanged. Every later step stores its field verbatim and moves on:
// fixed positional order, no going back.
func advanceRegistrationStep(state *RegistrationState, codeword string, senderID int64, input string) (promptKey string, done bool) {
	switch state.Step {
	case RegCodeword:
		if strings.TrimSpace(input) != codeword {
			return "bad_codeword", false
		}
		state.Draft.TelegramID = senderID
		state.Step = RegName
		return "ask_name", false

	case RegName:
		state.Draft.Name = input
		state.Step = RegCity
		return "ask_city", false

	case RegCity:
		state.Draft.City = input
		state.Step = RegWorkplace
		return "ask_workplace", false

	case RegWorkplace:
		state.Draft.Workplace = input
		state.Step = RegProductType
		return "ask_product", false

	case RegProductType:
		state.Draft.ProductType = input
		state.Step = RegSerial
		return "ask_serial", false

	case RegSerial:
		state.Draft.SerialNumber = input
		state.Step = RegPhone
		return "ask_phone", false

	case RegPhone:
		state.Draft.Phone = input
		return "registered", true
	}

	return "", false
}

func (b *Bot) handleRegistrationText(c tele.Context, state *RegistrationState) error {
	promptKey, done := advanceRegistrationStep(state, b.Cfg.Codeword, c.Sender().ID, c.Text())
	if !done {
		return c.Send(msg(promptKey))
	}

	if _, err := b.Stg.Client().Create(context.Background(), &state.Draft); err != nil {
		// Duplicate telegram_id and the like: logged, not surfaced.
		b.Log.Error("client registration failed", logger.Int64("user_id", c.Sender().ID), logger.Error(err))
	}
	b.Sessions.Clear(c.Sender().ID)
	return c.Send(msg(promptKey), clientMenu())
}
