package dialog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Intent of a single user utterance.
type Intent string

const (
	IntentBook    Intent = "book"
	IntentFAQ     Intent = "faq"
	IntentCancel  Intent = "cancel"
	IntentGoBack  Intent = "go_back"
	IntentUnknown Intent = "unknown"
)

// CanonicalServices lists everything the clinic offers, in the order
// they are read out to the user.
var CanonicalServices = []string{
	"physiotherapy",
	"massage",
	"osteopathy",
	"mental coaching",
	"ergotherapy",
	"acupuncture",
	"nutrition counseling",
}

// serviceAliases maps spoken or typed variations to canonical names.
// Ordered so longer, more specific aliases win over their prefixes.
var serviceAliases = []struct {
	alias     string
	canonical string
}{
	// English
	{"physical therapy", "physiotherapy"},
	{"physiotherapy", "physiotherapy"},
	{"physio", "physiotherapy"},
	{"massage", "massage"},
	{"osteopathy", "osteopathy"},
	{"osteo", "osteopathy"},
	{"mental coaching", "mental coaching"},
	{"mental training", "mental coaching"},
	{"coaching", "mental coaching"},
	{"mental", "mental coaching"},
	{"ergotherapy", "ergotherapy"},
	{"occupational", "ergotherapy"},
	{"ergo", "ergotherapy"},
	{"acupuncture", "acupuncture"},
	{"nutrition", "nutrition counseling"},
	{"dietitian", "nutrition counseling"},
	// German
	{"physiotherapie", "physiotherapy"},
	{"krankengymnastik", "physiotherapy"},
	{"osteopathie", "osteopathy"},
	{"mentaltraining", "mental coaching"},
	{"ergotherapie", "ergotherapy"},
	{"akupunktur", "acupuncture"},
	{"ernährungsberatung", "nutrition counseling"},
	{"ernährung", "nutrition counseling"},
	{"ernaehrung", "nutrition counseling"},
}

var germanWords = []string{
	"ich", "bitte", "danke", "möchte", "mochte", "termin",
	"buchen", "hallo", "ja", "nein", "wie", "können", "konnen",
	"wann", "welche", "einen", "eine", "der", "die", "das",
	"für", "fur", "und", "oder", "mit", "von", "auf", "ist",
	"guten", "morgen", "tag", "abend",
}

var (
	cancelWords = []string{
		"cancel", "stop", "abort", "quit", "exit",
		"abbrechen", "stopp", "aufhören", "beenden",
	}
	backWords = []string{"go back", "back", "previous", "zurück", "zuruck", "nochmal"}
	bookWords = []string{
		"book", "appointment", "reserve", "schedule", "buchen",
		"termin", "anmelden", "reservieren", "möchte einen",
		"make an appointment", "book an appointment",
	}
	affirmWords = []string{
		"yes", "ja", "correct", "korrekt", "right", "stimmt",
		"confirm", "bestätigen", "yep", "yup", "sure", "ok", "okay",
	}
	denyWords = []string{
		"no", "nein", "wrong", "falsch", "cancel", "abbrechen",
		"incorrect", "not right", "change",
	}
	slotAcceptWords = []string{"yes", "ja", "ok", "that", "that one", "fine", "good"}
)

var (
	isoDateRe      = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	europeanDateRe = regexp.MustCompile(`\b(\d{1,2})[.\-/](\d{1,2})[.\-/](\d{4})\b`)
	shortDateRe    = regexp.MustCompile(`\b(\d{1,2})[.\-/](\d{1,2})\b`)
	clockRe        = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\b`)
	nonPhoneRe     = regexp.MustCompile(`[^\d+]`)
)

var monthNames = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
	"januar": 1, "februar": 2, "märz": 3, "maerz": 3,
	"mai": 5, "juni": 6, "juli": 7, "dezember": 12,
	"oktober": 10,
}

// DetectLanguage scores the text against a German keyword list. Two or
// more whole-word hits means German, otherwise English.
func DetectLanguage(text string) Language {
	tokens := strings.Fields(strings.ToLower(text))
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = struct{}{}
	}
	score := 0
	for _, w := range germanWords {
		if _, ok := tokenSet[w]; ok {
			score++
		}
	}
	if score >= 2 {
		return LanguageGerman
	}
	return LanguageEnglish
}

// DetectIntent classifies what the user wants to do with this utterance.
func DetectIntent(text string) Intent {
	lower := strings.ToLower(text)

	for _, w := range cancelWords {
		if strings.Contains(lower, w) {
			return IntentCancel
		}
	}
	for _, w := range backWords {
		if strings.Contains(lower, w) {
			return IntentGoBack
		}
	}
	for _, w := range bookWords {
		if strings.Contains(lower, w) {
			return IntentBook
		}
	}
	if DetectService(text) != "" {
		return IntentBook
	}
	return IntentFAQ
}

// DetectService extracts a canonical service name, or "" if none matched.
func DetectService(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, a := range serviceAliases {
		if strings.Contains(lower, a.alias) {
			return a.canonical
		}
	}
	return ""
}

// DetectDate parses a date from natural language relative to now.
// Returns YYYY-MM-DD or "" when nothing parseable was found.
func DetectDate(text string, now time.Time) string {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, w := range []string{"today", "heute", "jetzt"} {
		if strings.Contains(lower, w) {
			return now.Format("2006-01-02")
		}
	}
	for _, w := range []string{"tomorrow", "morgen"} {
		if strings.Contains(lower, w) {
			return now.AddDate(0, 0, 1).Format("2006-01-02")
		}
	}
	if strings.Contains(lower, "next week") || strings.Contains(lower, "nächste woche") {
		return now.AddDate(0, 0, 7).Format("2006-01-02")
	}

	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	// European order: 15.03.2025, 15/03/2025, 15-03-2025
	if m := europeanDateRe.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%s-%02d-%02d", m[3], atoi(m[2]), atoi(m[1]))
	}

	// Day and month without year, current year assumed
	if m := shortDateRe.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%d-%02d-%02d", now.Year(), atoi(m[2]), atoi(m[1]))
	}

	for name, num := range monthNames {
		// Day-first ("15. März") and month-first ("March 15th")
		dayFirst := regexp.MustCompile(`\b(\d{1,2})\s*\.?\s*` + name + `\b`)
		if m := dayFirst.FindStringSubmatch(lower); m != nil {
			return fmt.Sprintf("%d-%02d-%02d", now.Year(), num, atoi(m[1]))
		}
		monthFirst := regexp.MustCompile(`\b` + name + `\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
		if m := monthFirst.FindStringSubmatch(lower); m != nil {
			return fmt.Sprintf("%d-%02d-%02d", now.Year(), num, atoi(m[1]))
		}
	}

	return ""
}

// DetectTime matches the user's words against the open slots for the
// chosen date. Returns the matched HH:MM or "" when nothing fits.
func DetectTime(text string, slots []SlotOption) string {
	if len(slots) == 0 {
		return ""
	}

	if m := clockRe.FindStringSubmatch(text); m != nil {
		hour := m[1]
		if len(hour) == 1 {
			hour = "0" + hour
		}
		minute := m[2]
		if minute == "" {
			minute = "00"
		}
		candidate := hour + ":" + minute

		for _, s := range slots {
			if s.Time == candidate {
				return candidate
			}
		}
		// Hour-only match: "9" accepts "09:00"
		for _, s := range slots {
			if strings.HasPrefix(s.Time, hour+":") {
				return s.Time
			}
		}
	}

	// Ordered longest first so "dreizehn" wins over its "zehn" suffix.
	wordHours := []struct {
		word string
		hour int
	}{
		{"dreizehn", 13},
		{"eleven", 11}, {"twelve", 12},
		{"zwölf", 12}, {"three", 15},
		{"nine", 9}, {"four", 16}, {"five", 17},
		{"zehn", 10}, {"neun", 9},
		{"ten", 10}, {"one", 13}, {"two", 14},
		{"elf", 11},
	}
	lower := strings.ToLower(text)
	for _, wh := range wordHours {
		word, hour := wh.word, wh.hour
		if strings.Contains(lower, word) {
			prefix := fmt.Sprintf("%02d:", hour)
			for _, s := range slots {
				if strings.HasPrefix(s.Time, prefix) {
					return s.Time
				}
			}
		}
	}

	// A single remaining slot is accepted by any affirmative
	if len(slots) == 1 {
		for _, w := range slotAcceptWords {
			if strings.Contains(lower, w) {
				return slots[0].Time
			}
		}
	}

	return ""
}

// DetectYesNo returns "yes", "no", or "" when undecidable.
func DetectYesNo(text string) string {
	lower := strings.ToLower(text)
	for _, w := range affirmWords {
		if strings.Contains(lower, w) {
			return "yes"
		}
	}
	for _, w := range denyWords {
		if strings.Contains(lower, w) {
			return "no"
		}
	}
	return ""
}

// NormalizePhone strips everything except digits and a leading plus.
func NormalizePhone(text string) string {
	return nonPhoneRe.ReplaceAllString(text, "")
}

// TitleCaseName uppercases the first rune of each word of a name.
func TitleCaseName(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	for i, f := range fields {
		runes := []rune(strings.ToLower(f))
		if len(runes) > 0 {
			runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		}
		fields[i] = string(runes)
	}
	return strings.Join(fields, " ")
}
