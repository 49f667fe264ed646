package handler

import (
	"encoding/json"
	"net/http"

	"github.com/smartbudget/api/internal/application/bills"
	"github.com/smartbudget/api/internal/application/budget"
	"github.com/smartbudget/api/internal/application/otp"
)

// ActionHandler dispatches the action-based contract: reads arrive as GET
// query parameters, writes as a JSON POST body tagged with an action name.
type ActionHandler struct {
	otp    otp.Service
	budget budget.Service
	bills  bills.Service
}

func NewActionHandler(otpSvc otp.Service, budgetSvc budget.Service, billsSvc bills.Service) *ActionHandler {
	return &ActionHandler{otp: otpSvc, budget: budgetSvc, bills: billsSvc}
}

// Get handles read-style actions. The bearer token some actions carry is
// accepted but not checked against anything; callers are trusted once they
// hold it.
func (h *ActionHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	switch q.Get("action") {
	case "sendOTP":
		if err := h.otp.Send(r.Context(), q.Get("email")); err != nil {
			writeError(w, err.Error())
			return
		}
		writeOK(w, SendOTPEnvelope{Success: true, Sent: true})

	case "verifyOTP":
		token, email, err := h.otp.Verify(r.Context(), q.Get("email"), q.Get("otp"))
		if err != nil {
			writeError(w, err.Error())
			return
		}
		writeOK(w, VerifyOTPEnvelope{Success: true, Verified: true, Token: token, Email: email})

	case "loadData":
		months, err := h.budget.LoadAll(r.Context(), q.Get("email"))
		if err != nil {
			writeError(w, err.Error())
			return
		}
		writeOK(w, LoadDataEnvelope{Success: true, Months: months})

	case "loadBills":
		list, err := h.bills.Load(r.Context(), q.Get("email"))
		if err != nil {
			writeError(w, err.Error())
			return
		}
		writeOK(w, LoadBillsEnvelope{Success: true, Bills: list})

	case "ping":
		writeOK(w, PingEnvelope{Success: true, Status: "connected"})

	default:
		writeError(w, "Unknown action")
	}
}

type postRequest struct {
	Action string          `json:"action"`
	Email  string          `json:"email"`
	Token  string          `json:"token"`
	Key    string          `json:"key"`
	Data   json.RawMessage `json:"data"`
	Bills  json.RawMessage `json:"bills"`
}

// Post handles write-style actions.
func (h *ActionHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, err.Error())
		return
	}

	switch req.Action {
	case "saveMonth":
		outcome, err := h.budget.SaveMonth(r.Context(), budget.SaveMonthRequest{
			Email:    req.Email,
			MonthKey: req.Key,
			Data:     req.Data,
		})
		if err != nil {
			writeError(w, err.Error())
			return
		}
		writeOK(w, SaveMonthEnvelope{Success: true, Saved: true, Action: outcome})

	case "saveBills":
		if err := h.bills.Save(r.Context(), req.Email, req.Bills); err != nil {
			writeError(w, err.Error())
			return
		}
		writeOK(w, SaveBillsEnvelope{Success: true, Saved: true})

	default:
		writeError(w, "Unknown action")
	}
}
