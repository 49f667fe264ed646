package handler

import (
	"encoding/json"
	"net/http"
)

// The wire contract signals success only in the body: every action response is
// HTTP 200 with a success flag, errors carry a free-text message.

// ErrorEnvelope is the uniform failure shape for all actions.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SendOTPEnvelope acknowledges an OTP dispatch.
type SendOTPEnvelope struct {
	Success bool `json:"success"`
	Sent    bool `json:"sent"`
}

// VerifyOTPEnvelope carries the session token after a successful verification.
type VerifyOTPEnvelope struct {
	Success  bool   `json:"success"`
	Verified bool   `json:"verified"`
	Token    string `json:"token"`
	Email    string `json:"email"`
}

// LoadDataEnvelope maps month keys to stored budget documents.
type LoadDataEnvelope struct {
	Success bool                       `json:"success"`
	Months  map[string]json.RawMessage `json:"months"`
}

// LoadBillsEnvelope carries the stored bills list.
type LoadBillsEnvelope struct {
	Success bool            `json:"success"`
	Bills   json.RawMessage `json:"bills"`
}

// PingEnvelope answers the connectivity check.
type PingEnvelope struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

// SaveMonthEnvelope reports the upsert outcome for one month.
type SaveMonthEnvelope struct {
	Success bool   `json:"success"`
	Saved   bool   `json:"saved"`
	Action  string `json:"action"`
}

// SaveBillsEnvelope acknowledges a bills save.
type SaveBillsEnvelope struct {
	Success bool `json:"success"`
	Saved   bool `json:"saved"`
}

func writeOK(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, msg string) {
	writeOK(w, ErrorEnvelope{Success: false, Error: msg})
}
