package dialog

import (
	"strings"
	"testing"
)

func TestTransitionAndGoBack(t *testing.T) {
	sess := NewSession("c1")

	sess.TransitionTo(StateCollectService)
	sess.TransitionTo(StateCollectDate)
	sess.TransitionTo(StateCollectSlot)
	if sess.State != StateCollectSlot {
		t.Fatalf("state = %v", sess.State)
	}
	if len(sess.StateHistory) != 3 {
		t.Fatalf("history len = %d", len(sess.StateHistory))
	}

	if !sess.GoBack() {
		t.Fatal("GoBack should succeed with history")
	}
	if sess.State != StateCollectDate {
		t.Errorf("state after go back = %v", sess.State)
	}

	sess.GoBack()
	sess.GoBack()
	if sess.State != StateIdle {
		t.Errorf("state after unwinding = %v", sess.State)
	}
	if sess.GoBack() {
		t.Error("GoBack on empty history should fail")
	}
}

func TestResetBookingClearsEverything(t *testing.T) {
	sess := NewSession("c1")
	sess.TransitionTo(StateCollectPhone)
	sess.Service = "massage"
	sess.Date = "2025-03-11"
	sess.Time = "10:00"
	sess.Name = "Anna Schmidt"
	sess.Phone = "+41791234567"
	sess.AvailableSlots = []SlotOption{{Date: "2025-03-11", Time: "10:00", Service: "massage"}}
	sess.PreInterruptState = StateCollectDate

	sess.ResetBooking()

	if sess.State != StateIdle {
		t.Errorf("state = %v", sess.State)
	}
	if sess.Service != "" || sess.Date != "" || sess.Time != "" || sess.Name != "" || sess.Phone != "" {
		t.Errorf("booking fields survived reset: %+v", sess)
	}
	if len(sess.AvailableSlots) != 0 || len(sess.StateHistory) != 0 || sess.PreInterruptState != "" {
		t.Errorf("transient fields survived reset: %+v", sess)
	}
	if sess.Language != LanguageEnglish {
		t.Errorf("language must survive reset, got %v", sess.Language)
	}
}

func TestIsBookingComplete(t *testing.T) {
	sess := NewSession("c1")
	if sess.IsBookingComplete() {
		t.Error("empty session reported complete")
	}
	sess.Service = "massage"
	sess.Date = "2025-03-11"
	sess.Time = "10:00"
	sess.Name = "Anna Schmidt"
	if sess.IsBookingComplete() {
		t.Error("missing phone reported complete")
	}
	sess.Phone = "+41791234567"
	if !sess.IsBookingComplete() {
		t.Error("full session reported incomplete")
	}
}

func TestSummaryBilingual(t *testing.T) {
	sess := NewSession("c1")
	sess.Service = "massage"
	sess.Date = "2025-03-11"
	sess.Time = "10:00"
	sess.Name = "Anna Schmidt"
	sess.Phone = "+41791234567"

	en := sess.Summary()
	if !strings.Contains(en, "Date: 2025-03-11 at 10:00") {
		t.Errorf("english summary = %q", en)
	}

	sess.Language = LanguageGerman
	de := sess.Summary()
	if !strings.Contains(de, "Datum: 2025-03-11 um 10:00 Uhr") {
		t.Errorf("german summary = %q", de)
	}
	if !strings.Contains(de, "Telefon: +41791234567") {
		t.Errorf("german summary missing phone: %q", de)
	}
}
