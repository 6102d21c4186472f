package intent

import (
	"fmt"
	"strings"
)

// Intent is the classified purpose of a caller input.
type Intent string

const (
	Booking     Intent = "booking"
	TrainStatus Intent = "train_status"
	Refund      Intent = "refund"
	Agent       Intent = "agent"
	Main        Intent = "main"
	PNRLookup   Intent = "pnr_lookup"
	AIFallback  Intent = "ai_fallback"
	Unknown     Intent = "unknown"
)

// Result pairs a classified intent with the canned reply for it.
type Result struct {
	Intent  Intent
	Message string
}

type rule struct {
	intent   Intent
	keywords []string
	message  string
}

// Classifier maps raw input text to an intent using ordered keyword
// rules plus a numeric PNR heuristic. Rule order matters: the first
// matching rule wins, so "book a ticket, PNR 123456" is a booking,
// not a PNR lookup.
type Classifier struct {
	rules []rule
}

// New builds the classifier. The main-menu prompt is injected so the
// "back to main" rule can echo it without this package owning menus.
func New(mainMenuPrompt string) *Classifier {
	return &Classifier{
		rules: []rule{
			{
				intent:   Booking,
				keywords: []string{"book", "ticket", "booking", "reserve"},
				message:  "Sure — I can help with booking. Do you want Sleeper or AC class?",
			},
			{
				intent:   TrainStatus,
				keywords: []string{"status", "pnr", "flight status", "train status"},
				message:  "Please tell me your 6-digit PNR number.",
			},
			{
				intent:   Refund,
				keywords: []string{"refund", "cancel", "tatkal", "money back"},
				message:  "I can help with refunds. Is this for a cancelled train or a tatkal booking?",
			},
			{
				intent:   Agent,
				keywords: []string{"agent", "human", "representative", "help"},
				message:  "Okay — transferring you to an agent. Please hold.",
			},
			{
				intent:   Main,
				keywords: []string{"back", "main", "menu"},
				message:  mainMenuPrompt,
			},
		},
	}
}

// Classify returns the first matching rule's result, or a PNR lookup
// when the text carries at least six digits. ok is false when nothing
// matched; that is a valid outcome meaning "defer to fallback".
func (c *Classifier) Classify(text string) (Result, bool) {
	t := strings.ToLower(text)
	for _, r := range c.rules {
		for _, kw := range r.keywords {
			if strings.Contains(t, kw) {
				return Result{Intent: r.intent, Message: r.message}, true
			}
		}
	}
	if pnr, ok := extractPNR(t); ok {
		return Result{
			Intent:  PNRLookup,
			Message: fmt.Sprintf("PNR %s is CONFIRMED. Train AI101 from Mumbai to Delhi.", pnr),
		}, true
	}
	return Result{}, false
}

const pnrLength = 6

// extractPNR concatenates every decimal digit in order of appearance
// and takes the first six as the PNR.
func extractPNR(text string) (string, bool) {
	var digits strings.Builder
	for _, ch := range text {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
			if digits.Len() == pnrLength {
				return digits.String(), true
			}
		}
	}
	return "", false
}
