package bot

import (
	"strconv"
	"strings"
)

type ActionKind int

const (
	ActUnknown ActionKind = iota
	ActConfirm
	ActCancel
	ActSpecialist
	ActRate
)

// Action is the parsed form of an inline button payload. Parsing happens in
// one place; handlers dispatch on the tag plus the sender's role.
type Action struct {
	Kind          ActionKind
	AppointmentID int64
	SpecialistID  int64
	Score         int
}

// ParseAction decodes payloads of the form "confirm:<id>", "cancel:<id>",
// "spec:<id>" and "rate:<score>:<id>". Telebot prefixes callback data with
// "\f" and may append "|"-separated arguments; both are stripped first.
func ParseAction(data string) (Action, bool) {
	data = strings.TrimPrefix(data, "\f")
	if i := strings.Index(data, "|"); i >= 0 {
		data = data[:i]
	}

	parts := strings.Split(data, ":")
	switch {
	case len(parts) == 2 && parts[0] == "confirm":
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return Action{}, false
		}
		return Action{Kind: ActConfirm, AppointmentID: id}, true

	case len(parts) == 2 && parts[0] == "cancel":
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return Action{}, false
		}
		return Action{Kind: ActCancel, AppointmentID: id}, true

	case len(parts) == 2 && parts[0] == "spec":
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return Action{}, false
		}
		return Action{Kind: ActSpecialist, SpecialistID: id}, true

	case len(parts) == 3 && parts[0] == "rate":
		score, err := strconv.Atoi(parts[1])
		if err != nil {
			return Action{}, false
		}
		id, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return Action{}, false
		}
		return Action{Kind: ActRate, Score: score, AppointmentID: id}, true
	}

	return Action{}, false
}
