package intent

import "strings"

// Intent of a retrieval query, used to bias ranking towards web pages
// for informational questions.
type Intent string

const (
	Information Intent = "information"
	Form        Intent = "form"
	General     Intent = "general"
)

// Additive boosts applied to web-sourced chunks per intent. Additive
// rather than multiplicative so ordering stays monotonic even when the
// relevance model emits negative raw scores.
const (
	InformationWebBoost = 3.0
	FormWebBoost        = 0.0
	GeneralWebBoost     = 1.5
)

var infoKeywords = []string{
	"how", "what", "when", "where", "can i", "wie kann",
	"book", "appointment", "termin", "buchen", "contact",
	"phone", "email", "opening hours", "services", "treatment",
	"cost", "price", "insurance", "process", "procedure",
	"öffnungszeiten", "kontakt", "telefon", "angebot",
}

var formKeywords = []string{
	"registration", "anmeldung", "form", "formular",
	"documents needed", "what information", "fill out",
	"patient form", "which documents", "bring to appointment",
}

// Classify buckets a query into information, form, or general by
// counting bilingual keyword hits per set.
func Classify(query string) Intent {
	lower := strings.ToLower(query)

	infoCount := 0
	for _, kw := range infoKeywords {
		if strings.Contains(lower, kw) {
			infoCount++
		}
	}
	formCount := 0
	for _, kw := range formKeywords {
		if strings.Contains(lower, kw) {
			formCount++
		}
	}

	switch {
	case infoCount > formCount:
		return Information
	case formCount > infoCount:
		return Form
	default:
		return General
	}
}

// WebBoost returns the additive score adjustment for web chunks.
func WebBoost(i Intent) float64 {
	switch i {
	case Information:
		return InformationWebBoost
	case Form:
		return FormWebBoost
	default:
		return GeneralWebBoost
	}
}
