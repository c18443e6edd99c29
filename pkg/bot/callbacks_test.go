package bot

import "testing"

func TestParseAction(t *testing.T) {
	cases := []struct {
		data string
		want Action
	}{
		{"confirm:17", Action{Kind: ActConfirm, AppointmentID: 17}},
		{"cancel:42", Action{Kind: ActCancel, AppointmentID: 42}},
		{"spec:3", Action{Kind: ActSpecialist, SpecialistID: 3}},
		{"rate:5:9", Action{Kind: ActRate, Score: 5, AppointmentID: 9}},
		// Telebot wraps callback data with a leading \f and may append
		// |-separated arguments.
		{"\fconfirm:17", Action{Kind: ActConfirm, AppointmentID: 17}},
		{"\fcancel:42|extra", Action{Kind: ActCancel, AppointmentID: 42}},
	}
	for _, tc := range cases {
		got, ok := ParseAction(tc.data)
		if !ok {
			t.Errorf("ParseAction(%q): not recognized", tc.data)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseAction(%q) = %+v, want %+v", tc.data, got, tc.want)
		}
	}
}

func TestParseActionRejectsMalformed(t *testing.T) {
	malformed := []string{
		"",
		"confirm",
		"confirm:",
		"confirm:abc",
		"cancel:1:2",
		"spec:x",
		"rate:5",
		"rate:five:9",
		"rate:5:nine",
		"take:7",
	}
	for _, data := range malformed {
		if _, ok := ParseAction(data); ok {
			t.Errorf("ParseAction(%q): expected rejection", data)
		}
	}
}
