package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/railvoice/railvoice/internal/callflow"
	"github.com/railvoice/railvoice/internal/intent"
	"github.com/railvoice/railvoice/internal/menu"
)

type rootResponse struct {
	Status      string `json:"status"`
	ActiveCalls int    `json:"active_calls"`
	TotalCalls  int    `json:"total_calls"`
}

type startRequest struct {
	CallerNumber string `json:"caller_number"`
}

type startResponse struct {
	CallID string `json:"call_id"`
	Status string `json:"status"`
	Prompt string `json:"prompt"`
}

type dtmfRequest struct {
	CallID      string `json:"call_id"`
	Digit       string `json:"digit"`
	CurrentMenu string `json:"current_menu,omitempty"`
}

type dtmfResponse struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	CurrentMenu menu.ID `json:"current_menu,omitempty"`
}

type conversationRequest struct {
	InputText string `json:"input_text"`
	CallID    string `json:"call_id,omitempty"`
}

type conversationResponse struct {
	Intent  intent.Intent `json:"intent"`
	Message string        `json:"message"`
	CallID  string        `json:"call_id,omitempty"`
}

type endRequest struct {
	CallID string `json:"call_id"`
}

type endResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	active, total := s.engine.Stats()
	writeJSON(w, http.StatusOK, rootResponse{
		Status:      "IVR Conversational Simulator Running",
		ActiveCalls: active,
		TotalCalls:  total,
	})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res := s.engine.StartCall(req.CallerNumber)
	writeJSON(w, http.StatusOK, startResponse{
		CallID: res.CallID,
		Status: "connected",
		Prompt: res.Prompt,
	})
}

func (s *Server) handleDTMF(w http.ResponseWriter, r *http.Request) {
	var req dtmfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.engine.HandleDigit(req.CallID, req.Digit)
	if err != nil {
		if errors.Is(err, callflow.ErrCallNotFound) {
			writeError(w, http.StatusNotFound, "Call not found")
			return
		}
		slog.Error("dtmf handling failed", "call_id", req.CallID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, dtmfResponse{
		Status:      res.Status,
		Message:     res.Message,
		CurrentMenu: res.CurrentMenu,
	})
}

func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	var req conversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res := s.engine.Converse(r.Context(), req.CallID, req.InputText)
	writeJSON(w, http.StatusOK, conversationResponse{
		Intent:  res.Intent,
		Message: res.Message,
		CallID:  req.CallID,
	})
}

// handleEnd accepts the call id as a JSON body or a query parameter.
func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	var req endRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req.CallID = ""
	}
	if req.CallID == "" {
		req.CallID = r.URL.Query().Get("call_id")
	}

	writeJSON(w, http.StatusOK, endResponse{Status: s.engine.EndCall(req.CallID)})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
