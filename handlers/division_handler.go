package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/bracket-service/middleware"
	"github.com/Dosada05/bracket-service/services"
)

type DivisionHandler struct {
	divisionService services.DivisionService
}

func NewDivisionHandler(divisionService services.DivisionService) *DivisionHandler {
	return &DivisionHandler{divisionService: divisionService}
}

// Configure создаёт или обновляет конфигурацию дивизиона целиком.
func (h *DivisionHandler) Configure(w http.ResponseWriter, r *http.Request) {
	guildID, err := guildIDFromRequest(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	divisionID := chi.URLParam(r, "divisionID")

	var input services.DivisionConfigInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.GuildID = guildID
	input.DivisionID = divisionID

	updatedBy, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	config, err := h.divisionService.ConfigureDivision(r.Context(), input, int64(updatedBy))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"division": config}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DivisionHandler) Get(w http.ResponseWriter, r *http.Request) {
	guildID, err := guildIDFromRequest(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	divisionID := chi.URLParam(r, "divisionID")

	config, err := h.divisionService.GetDivision(r.Context(), guildID, divisionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"division": config}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DivisionHandler) List(w http.ResponseWriter, r *http.Request) {
	guildID, err := guildIDFromRequest(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	divisions, err := h.divisionService.ListDivisions(r.Context(), guildID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"divisions": divisions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
