package dialog

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Language
	}{
		{"plain english", "I would like to book a massage", LanguageEnglish},
		{"plain german", "Ich möchte bitte einen Termin buchen", LanguageGerman},
		{"german greeting", "guten morgen, wie geht es?", LanguageGerman},
		{"single german word stays english", "Termin please", LanguageEnglish},
		{"empty", "", LanguageEnglish},
		{"english with der as name", "Der Williams is my name", LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.text); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{"book keyword", "I want to book a session", IntentBook},
		{"german booking", "Termin bitte", IntentBook},
		{"service name implies booking", "massage please", IntentBook},
		{"cancel", "cancel everything", IntentCancel},
		{"german cancel", "abbrechen", IntentCancel},
		{"go back", "go back one step", IntentGoBack},
		{"german back", "zurück bitte", IntentGoBack},
		{"question is faq", "what are your opening hours?", IntentFAQ},
		{"german question is faq", "wo ist die Klinik?", IntentFAQ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectIntent(tt.text); got != tt.want {
				t.Errorf("DetectIntent(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectService(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"I'd like a massage", "massage"},
		{"physio please", "physiotherapy"},
		{"Physical therapy for my back", "physiotherapy"},
		{"Krankengymnastik", "physiotherapy"},
		{"osteopathie termin", "osteopathy"},
		{"mental coaching session", "mental coaching"},
		{"Mentaltraining bitte", "mental coaching"},
		{"Akupunktur", "acupuncture"},
		{"Ernährungsberatung", "nutrition counseling"},
		{"ergotherapie", "ergotherapy"},
		{"occupational therapy", "ergotherapy"},
		{"a haircut", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := DetectService(tt.text); got != tt.want {
			t.Errorf("DetectService(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestDetectDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"today", "today would be great", "2025-03-10"},
		{"german today", "heute bitte", "2025-03-10"},
		{"tomorrow", "tomorrow morning", "2025-03-11"},
		{"german tomorrow", "morgen", "2025-03-11"},
		{"next week", "sometime next week", "2025-03-17"},
		{"iso date", "on 2025-04-01 please", "2025-04-01"},
		{"european date", "am 15.04.2025", "2025-04-15"},
		{"european with slashes", "15/04/2025", "2025-04-15"},
		{"short date", "15.04.", "2025-04-15"},
		{"month name", "March 15th", "2025-03-15"},
		{"german month name", "am 15. März", "2025-03-15"},
		{"nothing", "whenever you like", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDate(tt.text, testNow); got != tt.want {
				t.Errorf("DetectDate(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectTime(t *testing.T) {
	slots := []SlotOption{
		{Date: "2025-03-11", Time: "09:00", Service: "massage"},
		{Date: "2025-03-11", Time: "10:00", Service: "massage"},
		{Date: "2025-03-11", Time: "14:00", Service: "massage"},
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{"exact time", "10:00 works", "10:00"},
		{"bare hour", "at 9 please", "09:00"},
		{"double digit hour", "14 would be fine", "14:00"},
		{"word hour english", "ten o'clock", "10:00"},
		{"word hour german", "um neun Uhr", "09:00"},
		{"unavailable time", "11:00", ""},
		{"no time at all", "whenever", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectTime(tt.text, slots); got != tt.want {
				t.Errorf("DetectTime(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}

	t.Run("dreizehn wins over its zehn suffix", func(t *testing.T) {
		both := []SlotOption{
			{Date: "2025-03-11", Time: "10:00", Service: "massage"},
			{Date: "2025-03-11", Time: "13:00", Service: "massage"},
		}
		if got := DetectTime("um dreizehn Uhr bitte", both); got != "13:00" {
			t.Errorf("DetectTime(dreizehn) = %q, want 13:00", got)
		}
	})

	t.Run("single slot accepts affirmative", func(t *testing.T) {
		one := []SlotOption{{Date: "2025-03-11", Time: "13:00", Service: "massage"}}
		if got := DetectTime("yes that works", one); got != "13:00" {
			t.Errorf("affirmative on single slot = %q, want 13:00", got)
		}
	})

	t.Run("no slots", func(t *testing.T) {
		if got := DetectTime("10:00", nil); got != "" {
			t.Errorf("expected no match without slots, got %q", got)
		}
	})
}

func TestDetectYesNo(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"yes please", "yes"},
		{"ja gerne", "yes"},
		{"that's correct", "yes"},
		{"nein", "no"},
		{"that is wrong", "no"},
		{"hmm let me think", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := DetectYesNo(tt.text); got != tt.want {
			t.Errorf("DetectYesNo(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"+41 79 123 45 67", "+41791234567"},
		{"079-123-45-67", "0791234567"},
		{"my number is 0791234567 okay", "0791234567"},
		{"(079) 123.45.67", "0791234567"},
	}

	for _, tt := range tests {
		if got := NormalizePhone(tt.text); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestTitleCaseName(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"anna schmidt", "Anna Schmidt"},
		{"  JOHN   DOE  ", "John Doe"},
		{"maria", "Maria"},
		{"jürgen müller", "Jürgen Müller"},
	}

	for _, tt := range tests {
		if got := TitleCaseName(tt.text); got != tt.want {
			t.Errorf("TitleCaseName(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
