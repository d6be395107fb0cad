package dialog

import (
	"strings"
	"testing"
)

func TestValidateCatalogue(t *testing.T) {
	if err := ValidateCatalogue(); err != nil {
		t.Fatalf("catalogue incomplete: %v", err)
	}
}

func TestCatalogueCoversAllKinds(t *testing.T) {
	kinds := []MessageKind{
		MsgWelcome, MsgAskService, MsgServiceNotFound, MsgServiceConfirmed,
		MsgAskDate, MsgDateNotFound, MsgNoSlots, MsgAvailableSlots,
		MsgTimeNotFound, MsgAskName, MsgAskPhone, MsgPhoneInvalid,
		MsgConfirmBooking, MsgBookingSuccess, MsgBookingFailed,
		MsgCancelled, MsgWentBack, MsgAtBeginning, MsgConfirmYesNo,
		MsgFallback, MsgFAQResumeBooking,
	}
	for _, kind := range kinds {
		if _, ok := catalogue[kind]; !ok {
			t.Errorf("catalogue missing kind %q", kind)
		}
	}
}

func TestRenderFillsPlaceholders(t *testing.T) {
	got := Render(MsgNoSlots, LanguageEnglish, "service", "massage", "date", "2025-03-11")
	if !strings.Contains(got, "massage") || !strings.Contains(got, "2025-03-11") {
		t.Errorf("placeholders not filled: %q", got)
	}
	if strings.Contains(got, "{service}") || strings.Contains(got, "{date}") {
		t.Errorf("template braces leaked: %q", got)
	}
}

func TestRenderBothLanguagesDiffer(t *testing.T) {
	en := Render(MsgWelcome, LanguageEnglish)
	de := Render(MsgWelcome, LanguageGerman)
	if en == de {
		t.Error("english and german welcome must differ")
	}
	if !strings.Contains(de, "Willkommen") {
		t.Errorf("german welcome looks wrong: %q", de)
	}
}

func TestRenderUnknownLanguageFallsBackToEnglish(t *testing.T) {
	got := Render(MsgWelcome, Language("fr"))
	if got != Render(MsgWelcome, LanguageEnglish) {
		t.Errorf("unknown language should render english, got %q", got)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	got := Render(MessageKind("no_such_message"), LanguageEnglish)
	if got != "no_such_message" {
		t.Errorf("unknown kind should echo its key, got %q", got)
	}
}
