package dialog

import (
	"context"
	"strings"
	"time"

	"clinic-assistant-be/internal/pkg/logger"
)

// FAQAnswerer produces a free-text answer for a clinic question. The
// answer language follows the question language, not the session.
type FAQAnswerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// BookingRequest carries everything needed for an atomic booking.
type BookingRequest struct {
	Name    string
	Phone   string
	Service string
	Date    string
	Time    string
	RoomId  string
}

// BookingGateway is the engine's storage collaborator. OpenSlots reads
// availability, Book performs the atomic slot-claim plus appointment
// insert and fails when the slot was taken in the meantime.
type BookingGateway interface {
	OpenSlots(ctx context.Context, date, service string) ([]SlotOption, error)
	Book(ctx context.Context, req *BookingRequest) (appointmentId string, err error)
}

const maxSlotsListed = 5

// Engine drives the booking state machine. One instance serves all
// conversations; per-conversation data lives in the Session.
type Engine struct {
	answerer FAQAnswerer
	bookings BookingGateway
	log      logger.ILogger
	now      func() time.Time
}

func NewEngine(answerer FAQAnswerer, bookings BookingGateway, log logger.ILogger) *Engine {
	return &Engine{
		answerer: answerer,
		bookings: bookings,
		log:      log,
		now:      time.Now,
	}
}

// Greet opens a conversation with the welcome message. Only a session
// that has not started a flow moves to GREETING; a reconnect mid-booking
// keeps its place and just hears the welcome again.
func (e *Engine) Greet(sess *Session) string {
	if sess.State == StateIdle {
		sess.State = StateGreeting
	}
	return Render(MsgWelcome, sess.Language)
}

// ProcessTurn consumes one user utterance and returns the agent reply.
// The session is mutated in place. A turn that lands on BOOKING_DONE is
// reprocessed as a fresh intent at most once, so a confirmation message
// can simultaneously start a new request without unbounded recursion.
func (e *Engine) ProcessTurn(ctx context.Context, sess *Session, text string) string {
	for pass := 0; ; pass++ {
		reply, reprocess := e.step(ctx, sess, text)
		if !reprocess || pass >= 1 {
			return reply
		}
	}
}

func (e *Engine) step(ctx context.Context, sess *Session, text string) (string, bool) {
	// A finished booking tears down before anything else so cancel and
	// go-back cannot re-enter the already-booked confirmation.
	if sess.State == StateBookingDone {
		sess.ResetBooking()
		return "", true
	}

	state := sess.State

	e.log.Debug("dialog", "processing turn", map[string]interface{}{
		"conversation_id": sess.ConversationId,
		"state":           string(state),
		"input":           truncate(text, 60),
	})

	// Language detection only on early messages, before the flow locks in
	if state == StateIdle || state == StateGreeting {
		if detected := DetectLanguage(text); detected != sess.Language {
			sess.Language = detected
			e.log.Info("dialog", "language detected", map[string]interface{}{
				"conversation_id": sess.ConversationId,
				"language":        string(detected),
			})
		}
	}
	lang := sess.Language

	// Cancel works anywhere once a flow has started
	if DetectIntent(text) == IntentCancel && state != StateIdle && state != StateGreeting {
		sess.ResetBooking()
		return Render(MsgCancelled, lang), false
	}

	// Go back pops the history stack
	if DetectIntent(text) == IntentGoBack {
		if sess.GoBack() {
			return Render(MsgWentBack, lang) + " " + e.promptForState(sess), false
		}
		return Render(MsgAtBeginning, lang), false
	}

	switch state {
	case StateIdle, StateGreeting:
		if DetectIntent(text) == IntentBook {
			sess.TransitionTo(StateCollectService)
			return Render(MsgAskService, lang), false
		}
		sess.State = StateFAQ
		answer := e.answerFAQ(ctx, sess, text)
		sess.State = StateIdle
		return answer, false

	case StateFAQ:
		answer := e.answerFAQ(ctx, sess, text)
		if sess.PreInterruptState != "" {
			sess.State = sess.PreInterruptState
			sess.PreInterruptState = ""
			return answer + "\n\n" + Render(MsgFAQResumeBooking, lang) + " " + e.promptForState(sess), false
		}
		sess.State = StateIdle
		return answer, false

	case StateCollectService:
		if DetectIntent(text) == IntentFAQ && DetectService(text) == "" {
			return e.faqInterrupt(ctx, sess, text, MsgAskService), false
		}
		service := DetectService(text)
		if service == "" {
			return Render(MsgServiceNotFound, lang), false
		}
		sess.Service = service
		sess.TransitionTo(StateCollectDate)
		return Render(MsgServiceConfirmed, lang, "service", service), false

	case StateCollectDate:
		if DetectIntent(text) == IntentFAQ && DetectDate(text, e.now()) == "" {
			return e.faqInterrupt(ctx, sess, text, MsgAskDate), false
		}
		parsed := DetectDate(text, e.now())
		if parsed == "" {
			return Render(MsgDateNotFound, lang), false
		}
		slots, err := e.bookings.OpenSlots(ctx, parsed, sess.Service)
		if err != nil {
			e.log.Error("dialog", "slot lookup failed", map[string]interface{}{
				"conversation_id": sess.ConversationId,
				"date":            parsed,
				"service":         sess.Service,
				"error":           err.Error(),
			})
			slots = nil
		}
		if len(slots) == 0 {
			return Render(MsgNoSlots, lang, "service", sess.Service, "date", parsed), false
		}
		sess.Date = parsed
		sess.AvailableSlots = slots
		sess.TransitionTo(StateCollectSlot)
		return Render(MsgAvailableSlots, lang,
			"date", parsed, "service", sess.Service, "times", listTimes(slots)), false

	case StateCollectSlot:
		chosen := DetectTime(text, sess.AvailableSlots)
		if chosen == "" {
			return Render(MsgTimeNotFound, lang, "times", listTimes(sess.AvailableSlots)), false
		}
		sess.Time = chosen
		sess.TransitionTo(StateCollectName)
		return Render(MsgAskName, lang), false

	case StateCollectName:
		name := TitleCaseName(text)
		if len(name) < 2 {
			return Render(MsgAskName, lang), false
		}
		sess.Name = name
		sess.TransitionTo(StateCollectPhone)
		return Render(MsgAskPhone, lang), false

	case StateCollectPhone:
		phone := NormalizePhone(text)
		if len(phone) < 9 {
			return Render(MsgPhoneInvalid, lang), false
		}
		sess.Phone = phone
		sess.TransitionTo(StateConfirmBooking)
		return Render(MsgConfirmBooking, lang, "summary", sess.Summary()), false

	case StateConfirmBooking:
		switch DetectYesNo(text) {
		case "yes":
			appointmentId, err := e.bookings.Book(ctx, &BookingRequest{
				Name:    sess.Name,
				Phone:   sess.Phone,
				Service: sess.Service,
				Date:    sess.Date,
				Time:    sess.Time,
				RoomId:  sess.ConversationId,
			})
			if err != nil {
				e.log.Error("dialog", "booking failed", map[string]interface{}{
					"conversation_id": sess.ConversationId,
					"error":           err.Error(),
				})
				sess.ResetBooking()
				return Render(MsgBookingFailed, lang), false
			}
			e.log.Info("dialog", "booking confirmed", map[string]interface{}{
				"conversation_id": sess.ConversationId,
				"appointment_id":  appointmentId,
			})
			// The reset happens on the next turn, when BOOKING_DONE
			// reprocesses the new message as a fresh intent.
			sess.TransitionTo(StateBookingDone)
			return Render(MsgBookingSuccess, lang), false
		case "no":
			sess.ResetBooking()
			return Render(MsgCancelled, lang), false
		default:
			return Render(MsgConfirmYesNo, lang), false
		}

	}

	return Render(MsgFallback, lang), false
}

// faqInterrupt answers a question asked mid-booking and re-asks the
// current state's question afterwards, leaving the flow where it was.
func (e *Engine) faqInterrupt(ctx context.Context, sess *Session, text string, reprompt MessageKind) string {
	prior := sess.State
	sess.PreInterruptState = prior
	sess.State = StateFAQ
	answer := e.answerFAQ(ctx, sess, text)
	sess.State = prior
	sess.PreInterruptState = ""
	return answer + "\n\n" + Render(reprompt, sess.Language)
}

func (e *Engine) answerFAQ(ctx context.Context, sess *Session, query string) string {
	answer, err := e.answerer.Answer(ctx, query)
	if err != nil {
		e.log.Error("dialog", "faq answer failed", map[string]interface{}{
			"conversation_id": sess.ConversationId,
			"error":           err.Error(),
		})
		if sess.Language == LanguageGerman {
			return "Es tut mir leid, ich konnte diese Information gerade nicht abrufen."
		}
		return "I'm sorry, I couldn't retrieve that information right now."
	}
	return answer
}

// promptForState re-asks the question belonging to the current state,
// used after go-back and when resuming from an FAQ interrupt.
func (e *Engine) promptForState(sess *Session) string {
	lang := sess.Language
	switch sess.State {
	case StateCollectService:
		return Render(MsgAskService, lang)
	case StateCollectDate:
		return Render(MsgServiceConfirmed, lang, "service", sess.Service)
	case StateCollectSlot:
		if len(sess.AvailableSlots) > 0 {
			return Render(MsgAvailableSlots, lang,
				"date", sess.Date, "service", sess.Service, "times", listTimes(sess.AvailableSlots))
		}
		return Render(MsgAskDate, lang)
	case StateCollectName:
		return Render(MsgAskName, lang)
	case StateCollectPhone:
		return Render(MsgAskPhone, lang)
	case StateConfirmBooking:
		return Render(MsgConfirmBooking, lang, "summary", sess.Summary())
	}
	return Render(MsgWelcome, lang)
}

func listTimes(slots []SlotOption) string {
	n := len(slots)
	if n > maxSlotsListed {
		n = maxSlotsListed
	}
	times := make([]string, n)
	for i := 0; i < n; i++ {
		times[i] = slots[i].Time
	}
	return strings.Join(times, ", ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
