package dialog

import "fmt"

// SlotOption is one open slot offered to the user while collecting a time.
type SlotOption struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Service string `json:"service"`
}

// Session holds everything the agent remembers about one conversation.
// Created on the first message, mutated only by the engine processing
// that conversation's turns, dropped when the conversation ends or the
// idle TTL expires.
type Session struct {
	ConversationId string            `json:"conversation_id"`
	Language       Language          `json:"language"`
	State          ConversationState `json:"state"`

	// StateHistory enables "go back". Every transition pushes the
	// outgoing state, most recent last.
	StateHistory []ConversationState `json:"state_history"`

	// Booking data, filled step by step.
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`

	// Open slots fetched for the chosen date and service.
	AvailableSlots []SlotOption `json:"available_slots"`

	// PreInterruptState is set only while answering an FAQ that
	// interrupted a booking flow. Non-empty implies State == StateFAQ.
	PreInterruptState ConversationState `json:"pre_interrupt_state"`
}

func NewSession(conversationId string) *Session {
	return &Session{
		ConversationId: conversationId,
		Language:       LanguageEnglish,
		State:          StateIdle,
		StateHistory:   make([]ConversationState, 0, 8),
	}
}

// TransitionTo moves to a new state, pushing the current one onto the
// history stack so "go back" can return to it.
func (s *Session) TransitionTo(next ConversationState) {
	s.StateHistory = append(s.StateHistory, s.State)
	s.State = next
}

// GoBack restores the previous state. Returns false when the history
// is empty, meaning the conversation is already at its beginning.
func (s *Session) GoBack() bool {
	if len(s.StateHistory) == 0 {
		return false
	}
	last := len(s.StateHistory) - 1
	s.State = s.StateHistory[last]
	s.StateHistory = s.StateHistory[:last]
	return true
}

// ResetBooking clears all collected booking data and returns to IDLE.
// The only teardown path for a completed or abandoned booking.
func (s *Session) ResetBooking() {
	s.Service = ""
	s.Date = ""
	s.Time = ""
	s.Name = ""
	s.Phone = ""
	s.AvailableSlots = nil
	s.StateHistory = s.StateHistory[:0]
	s.PreInterruptState = ""
	s.State = StateIdle
}

func (s *Session) IsBookingComplete() bool {
	return s.Service != "" && s.Date != "" && s.Time != "" && s.Name != "" && s.Phone != ""
}

// Summary renders the confirmation read-back in the session language.
func (s *Session) Summary() string {
	if s.Language == LanguageGerman {
		return fmt.Sprintf(
			"Name: %s\nService: %s\nDatum: %s um %s Uhr\nTelefon: %s\n",
			s.Name, s.Service, s.Date, s.Time, s.Phone,
		)
	}
	return fmt.Sprintf(
		"Name: %s\nService: %s\nDate: %s at %s\nPhone: %s\n",
		s.Name, s.Service, s.Date, s.Time, s.Phone,
	)
}
