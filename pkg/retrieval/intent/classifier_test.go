package intent

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Intent
	}{
		{
			name:  "opening hours question",
			query: "What are your opening hours?",
			want:  Information,
		},
		{
			name:  "german opening hours",
			query: "Wie sind die Öffnungszeiten?",
			want:  Information,
		},
		{
			name:  "registration form",
			query: "Where do I find the registration form?",
			want:  Form,
		},
		{
			name:  "german registration",
			query: "Gibt es ein Formular zur Anmeldung?",
			want:  Form,
		},
		{
			name:  "documents for appointment",
			query: "Which documents should I fill out before my visit?",
			want:  Form,
		},
		{
			name:  "plain statement",
			query: "Massage therapy",
			want:  General,
		},
		{
			name:  "empty query",
			query: "",
			want:  General,
		},
		{
			name:  "booking question",
			query: "Can I book an appointment by phone?",
			want:  Information,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.query); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestWebBoost(t *testing.T) {
	if WebBoost(Information) != 3.0 {
		t.Errorf("information boost = %v", WebBoost(Information))
	}
	if WebBoost(Form) != 0.0 {
		t.Errorf("form boost = %v", WebBoost(Form))
	}
	if WebBoost(General) != 1.5 {
		t.Errorf("general boost = %v", WebBoost(General))
	}
	if WebBoost(Intent("unknown")) != GeneralWebBoost {
		t.Errorf("unknown intents must fall back to the general boost")
	}
}
