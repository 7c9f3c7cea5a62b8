package handler

import (
	"encoding/json"
	"net/http"

	"github.com/classroom-api/internal/application/auth"
	"github.com/classroom-api/internal/pkg/validate"
)

// PasswordResetHandler handles the two-phase password reset flow.
type PasswordResetHandler struct {
	svc auth.Service
}

func NewPasswordResetHandler(svc auth.Service) *PasswordResetHandler {
	return &PasswordResetHandler{svc: svc}
}

// Request handles phase one: mint a reset token and schedule the email.
func (h *PasswordResetHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req auth.ResetRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.svc.RequestReset(r.Context(), req.Email); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Password reset link sent successfully"})
}

// Confirm handles phase two: exchange the reset token for a password change.
func (h *PasswordResetHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req auth.ResetConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	accessToken, err := h.svc.ConfirmReset(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{AccessToken: accessToken})
}
