package handler

import (
	"encoding/json"
	"net/http"

	"github.com/classroom-api/internal/application/member"
	"github.com/classroom-api/internal/domain"
	"github.com/classroom-api/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

// MemberHandler handles one role-membership collection. The router mounts
// three instances of it, one per table.
type MemberHandler struct {
	svc member.Service
}

func NewMemberHandler(svc member.Service) *MemberHandler { return &MemberHandler{svc: svc} }

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	m, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, cursor := parsePagination(r)
	ms, nextCursor, err := h.svc.List(r.Context(), limit, cursor)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PaginatedMembershipsEnvelope{Data: ms, NextCursor: nextCursor})
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// GetByUser looks up the membership row for a given user, if any.
func (h *MemberHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.GetByUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Membership deleted successfully"})
}
