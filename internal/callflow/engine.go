// Package callflow holds the call session state machine: it maps
// caller input (keypad digit or classified text) to menu transitions,
// response messages, and call termination.
package callflow

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/railvoice/railvoice/internal/call"
	"github.com/railvoice/railvoice/internal/fallback"
	"github.com/railvoice/railvoice/internal/intent"
	"github.com/railvoice/railvoice/internal/menu"
)

const (
	StatusOK          = "ok"
	StatusInvalid     = "invalid"
	StatusTransferred = "transferred"
	StatusEnded       = "ended"
	StatusNotFound    = "not_found"
)

const (
	invalidOptionMessage = "Invalid option. Try again."
	helpMessage          = "Sorry, I didn't get that. You can say 'book ticket', 'train status', or 'refund'."
)

var ErrCallNotFound = errors.New("call not found")

// digitOptions maps keypad digits to main-menu option keys.
var digitOptions = map[string]string{
	"1": "booking",
	"2": "train_status",
	"3": "refund",
	"9": "agent",
	"0": "main",
}

// menuForIntent lists the classified intents that move an attached
// session to a new menu. pnr_lookup and agent deliberately leave
// session state untouched: the text path never ends a call, unlike
// digit 9.
var menuForIntent = map[intent.Intent]menu.ID{
	intent.Booking:     menu.Booking,
	intent.TrainStatus: menu.TrainStatus,
	intent.Refund:      menu.Refund,
	intent.Main:        menu.Main,
}

const defaultFallbackTimeout = 10 * time.Second

// Engine drives call sessions through the menu graph. The fallback
// responder may be nil, in which case unclassified input gets the
// generic help message.
type Engine struct {
	store           *call.Store
	catalog         *menu.Catalog
	classifier      *intent.Classifier
	responder       fallback.Responder
	fallbackTimeout time.Duration
}

func NewEngine(store *call.Store, catalog *menu.Catalog, classifier *intent.Classifier, responder fallback.Responder, fallbackTimeout time.Duration) *Engine {
	if fallbackTimeout <= 0 {
		fallbackTimeout = defaultFallbackTimeout
	}

	return &Engine{
		store:           store,
		catalog:         catalog,
		classifier:      classifier,
		responder:       responder,
		fallbackTimeout: fallbackTimeout,
	}
}

type StartResult struct {
	CallID string
	Prompt string
}

// StartCall registers a new session at the main menu.
func (e *Engine) StartCall(callerNumber string) StartResult {
	s := e.store.Create(callerNumber)
	m, _ := e.catalog.Get(menu.Main)

	slog.Info("call started", "call_id", s.CallID, "caller", callerNumber)
	return StartResult{CallID: s.CallID, Prompt: m.Prompt}
}

type DigitResult struct {
	Status      string
	Message     string
	CurrentMenu menu.ID
}

// HandleDigit applies a keypad press to the session. An unmapped digit
// is a normal outcome (status invalid, no state change), an unknown
// call id is the one hard failure (ErrCallNotFound), and digit 9
// archives the session and reports a transfer.
func (e *Engine) HandleDigit(callID, digit string) (DigitResult, error) {
	key, recognized := digitOptions[digit]
	if !recognized {
		s, ok := e.store.Get(callID)
		if !ok {
			return DigitResult{}, ErrCallNotFound
		}
		return DigitResult{Status: StatusInvalid, Message: invalidOptionMessage, CurrentMenu: s.CurrentMenu}, nil
	}

	mainMenu, err := e.catalog.Get(menu.Main)
	if err != nil {
		return DigitResult{}, err
	}
	opt := mainMenu.Options[key]

	s, ok := e.store.Update(callID, func(s *call.Session) bool {
		s.RecordInput(digit)
		if opt.Terminate {
			return true
		}
		s.Visit(opt.Next)
		return false
	})
	if !ok {
		return DigitResult{}, ErrCallNotFound
	}

	if opt.Terminate {
		slog.Info("call transferred to agent", "call_id", callID)
		return DigitResult{Status: StatusTransferred, Message: opt.Message}, nil
	}
	return DigitResult{Status: StatusOK, Message: opt.Message, CurrentMenu: s.CurrentMenu}, nil
}

type ConverseResult struct {
	Intent  intent.Intent
	Message string
}

// Converse classifies free text and, for menu-moving intents with an
// attached session, applies the transition. Unclassified input goes to
// the fallback responder when one is configured; the network call runs
// outside any session lock with a bounded timeout, and any failure
// degrades to the generic help message.
func (e *Engine) Converse(ctx context.Context, callID, text string) ConverseResult {
	text = strings.TrimSpace(text)

	if r, ok := e.classifier.Classify(text); ok {
		if target, moves := menuForIntent[r.Intent]; moves && callID != "" {
			e.store.Update(callID, func(s *call.Session) bool {
				s.Visit(target)
				return false
			})
		}
		return ConverseResult{Intent: r.Intent, Message: r.Message}
	}

	if e.responder != nil {
		fctx, cancel := context.WithTimeout(ctx, e.fallbackTimeout)
		defer cancel()

		reply, err := e.responder.Respond(fctx, text)
		if err != nil {
			slog.Warn("fallback responder failed", "error", err)
		} else if reply != "" {
			return ConverseResult{Intent: intent.AIFallback, Message: reply}
		}
	}

	return ConverseResult{Intent: intent.Unknown, Message: helpMessage}
}

// EndCall archives the session. Ending an unknown or already-ended
// call reports not_found; it is never an error.
func (e *Engine) EndCall(callID string) string {
	if _, ok := e.store.End(callID); !ok {
		return StatusNotFound
	}
	slog.Info("call ended", "call_id", callID)
	return StatusEnded
}

// Stats returns the active and archived call counts.
func (e *Engine) Stats() (active, ended int) {
	return e.store.Counts()
}
