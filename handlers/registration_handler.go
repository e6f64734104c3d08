package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/bracket-service/services"
)

type RegistrationHandler struct {
	registrationService services.RegistrationService
}

func NewRegistrationHandler(registrationService services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	guildID, err := guildIDFromRequest(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	divisionID := chi.URLParam(r, "divisionID")

	var input services.RegisterTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	// Адресация берётся из URL, а не из тела запроса.
	input.GuildID = guildID
	input.DivisionID = divisionID

	if input.UserID <= 0 || input.UserName == "" {
		badRequestResponse(w, r, errors.New("user_id and user_name are required"))
		return
	}

	registration, err := h.registrationService.RegisterTeam(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"registration": registration}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RegistrationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	guildID, err := guildIDFromRequest(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	divisionID := chi.URLParam(r, "divisionID")

	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		badRequestResponse(w, r, errors.New("invalid user ID in URL"))
		return
	}

	if err := h.registrationService.WithdrawTeam(r.Context(), guildID, divisionID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	guildID, err := guildIDFromRequest(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	divisionID := chi.URLParam(r, "divisionID")

	registrations, err := h.registrationService.ListRegistrations(r.Context(), guildID, divisionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"registrations": registrations}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
