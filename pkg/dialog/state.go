package dialog

// ConversationState is the exact position of the agent within a
// conversation. The booking flow walks the collect states in order,
// with FAQ interrupts and go-back as the two escape mechanisms.
type ConversationState string

const (
	StateIdle           ConversationState = "idle"
	StateGreeting       ConversationState = "greeting"
	StateFAQ            ConversationState = "faq"
	StateCollectService ConversationState = "collect_service"
	StateCollectDate    ConversationState = "collect_date"
	StateCollectSlot    ConversationState = "collect_slot"
	StateCollectName    ConversationState = "collect_name"
	StateCollectPhone   ConversationState = "collect_phone"
	StateConfirmBooking ConversationState = "confirm_booking"
	StateBookingDone    ConversationState = "booking_done"
)

// Language of the conversation, detected from early user messages.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageGerman  Language = "de"
)
