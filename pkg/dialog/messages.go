package dialog

import (
	"fmt"
	"strings"
)

// MessageKind is a typed key into the response catalogue. Every kind
// must carry both languages; Catalogue validation runs at startup.
type MessageKind string

const (
	MsgWelcome          MessageKind = "welcome"
	MsgAskService       MessageKind = "ask_service"
	MsgServiceNotFound  MessageKind = "service_not_found"
	MsgServiceConfirmed MessageKind = "service_confirmed"
	MsgAskDate          MessageKind = "ask_date"
	MsgDateNotFound     MessageKind = "date_not_found"
	MsgNoSlots          MessageKind = "no_slots"
	MsgAvailableSlots   MessageKind = "available_slots"
	MsgTimeNotFound     MessageKind = "time_not_found"
	MsgAskName          MessageKind = "ask_name"
	MsgAskPhone         MessageKind = "ask_phone"
	MsgPhoneInvalid     MessageKind = "phone_invalid"
	MsgConfirmBooking   MessageKind = "confirm_booking"
	MsgBookingSuccess   MessageKind = "booking_success"
	MsgBookingFailed    MessageKind = "booking_failed"
	MsgCancelled        MessageKind = "cancelled"
	MsgWentBack         MessageKind = "went_back"
	MsgAtBeginning      MessageKind = "at_beginning"
	MsgConfirmYesNo     MessageKind = "confirm_yes_no"
	MsgFallback         MessageKind = "fallback"
	MsgFAQResumeBooking MessageKind = "faq_resume_booking"
)

var catalogue = map[MessageKind]map[Language]string{
	MsgWelcome: {
		LanguageEnglish: "Welcome to Functiomed! I can answer questions about our clinic or help you book an appointment. How can I help you today?",
		LanguageGerman:  "Willkommen bei Functiomed! Ich kann Ihnen Fragen über unsere Klinik beantworten oder Ihnen helfen, einen Termin zu buchen. Wie kann ich Ihnen heute helfen?",
	},
	MsgAskService: {
		LanguageEnglish: "Which service would you like to book? We offer physiotherapy, massage, osteopathy, mental coaching, ergotherapy, acupuncture, and nutrition counseling.",
		LanguageGerman:  "Welchen Service möchten Sie buchen? Wir bieten Physiotherapie, Massage, Osteopathie, Mental Coaching, Ergotherapie, Akupunktur und Ernährungsberatung an.",
	},
	MsgServiceNotFound: {
		LanguageEnglish: "I didn't catch that service. Please choose from: physiotherapy, massage, osteopathy, mental coaching, or acupuncture.",
		LanguageGerman:  "Den Service habe ich nicht verstanden. Bitte wählen Sie aus: Physiotherapie, Massage, Osteopathie, Mental Coaching oder Akupunktur.",
	},
	MsgServiceConfirmed: {
		LanguageEnglish: "Great, {service}! What date would you like? You can say tomorrow, or a specific date like March 15th.",
		LanguageGerman:  "Sehr gut, {service}! Für welches Datum möchten Sie buchen? Sie können zum Beispiel morgen oder einen bestimmten Termin sagen.",
	},
	MsgAskDate: {
		LanguageEnglish: "What date would you like the appointment?",
		LanguageGerman:  "Für welches Datum möchten Sie den Termin?",
	},
	MsgDateNotFound: {
		LanguageEnglish: "I didn't catch the date. Please say something like tomorrow, or a date like March 15th.",
		LanguageGerman:  "Das Datum habe ich nicht verstanden. Bitte sagen Sie zum Beispiel morgen oder den 15. März.",
	},
	MsgNoSlots: {
		LanguageEnglish: "Sorry, there are no available slots for {service} on {date}. Would you like to try a different date?",
		LanguageGerman:  "Es tut mir leid, für {service} am {date} sind keine Termine verfügbar. Möchten Sie ein anderes Datum versuchen?",
	},
	MsgAvailableSlots: {
		LanguageEnglish: "On {date} we have these available times for {service}: {times}. Which time works for you?",
		LanguageGerman:  "Am {date} sind folgende Zeiten für {service} verfügbar: {times}. Welche Zeit passt Ihnen?",
	},
	MsgTimeNotFound: {
		LanguageEnglish: "That time is not available. Please choose from: {times}.",
		LanguageGerman:  "Diese Zeit ist nicht verfügbar. Bitte wählen Sie aus: {times}.",
	},
	MsgAskName: {
		LanguageEnglish: "Perfect! What is your full name?",
		LanguageGerman:  "Perfekt! Wie ist Ihr vollständiger Name?",
	},
	MsgAskPhone: {
		LanguageEnglish: "And your phone number?",
		LanguageGerman:  "Und Ihre Telefonnummer?",
	},
	MsgPhoneInvalid: {
		LanguageEnglish: "Please provide a complete phone number, for example plus 41 79 123 45 67.",
		LanguageGerman:  "Bitte nennen Sie eine vollständige Telefonnummer, zum Beispiel plus 41 79 123 45 67.",
	},
	MsgConfirmBooking: {
		LanguageEnglish: "Let me confirm your appointment:\n{summary}\nShall I confirm this booking? Please say yes or no.",
		LanguageGerman:  "Ich bestätige Ihren Termin:\n{summary}\nSoll ich diesen Termin buchen? Bitte sagen Sie ja oder nein.",
	},
	MsgBookingSuccess: {
		LanguageEnglish: "Your appointment is confirmed! Is there anything else I can help you with?",
		LanguageGerman:  "Ihr Termin ist bestätigt! Kann ich Ihnen noch bei etwas helfen?",
	},
	MsgBookingFailed: {
		LanguageEnglish: "I'm sorry, there was a technical problem saving your appointment. Please call us directly at the clinic.",
		LanguageGerman:  "Es tut mir leid, es gab ein technisches Problem beim Speichern Ihres Termins. Bitte rufen Sie uns direkt in der Klinik an.",
	},
	MsgCancelled: {
		LanguageEnglish: "Booking cancelled. How else can I help you?",
		LanguageGerman:  "Buchung abgebrochen. Wie kann ich Ihnen sonst helfen?",
	},
	MsgWentBack: {
		LanguageEnglish: "No problem, let's go back.",
		LanguageGerman:  "Kein Problem, wir gehen einen Schritt zurück.",
	},
	MsgAtBeginning: {
		LanguageEnglish: "We are already at the beginning. How can I help you?",
		LanguageGerman:  "Wir sind bereits am Anfang. Wie kann ich Ihnen helfen?",
	},
	MsgConfirmYesNo: {
		LanguageEnglish: "Please say yes to confirm or no to cancel.",
		LanguageGerman:  "Bitte sagen Sie ja zum Bestätigen oder nein zum Abbrechen.",
	},
	MsgFallback: {
		LanguageEnglish: "I'm not sure I understood. Could you rephrase that?",
		LanguageGerman:  "Ich bin mir nicht sicher, ob ich das verstanden habe. Könnten Sie das umformulieren?",
	},
	MsgFAQResumeBooking: {
		LanguageEnglish: "I hope that answered your question! Now, back to your booking:",
		LanguageGerman:  "Ich hoffe, das hat Ihre Frage beantwortet! Jetzt zurück zu Ihrer Buchung:",
	},
}

// ValidateCatalogue checks every message kind carries both languages.
// Called once from the bootstrap so a missing translation fails loudly
// at startup instead of silently at runtime.
func ValidateCatalogue() error {
	for kind, byLang := range catalogue {
		for _, lang := range []Language{LanguageEnglish, LanguageGerman} {
			if _, ok := byLang[lang]; !ok {
				return fmt.Errorf("message %q missing language %q", kind, lang)
			}
		}
	}
	return nil
}

// Render resolves a message template in the given language and fills
// placeholders. Args are alternating placeholder/value pairs, e.g.
// Render(MsgNoSlots, lang, "service", svc, "date", date).
func Render(kind MessageKind, lang Language, args ...string) string {
	byLang, ok := catalogue[kind]
	if !ok {
		return string(kind)
	}
	template, ok := byLang[lang]
	if !ok {
		template = byLang[LanguageEnglish]
	}
	if len(args) == 0 {
		return template
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, "{"+args[i]+"}", args[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
