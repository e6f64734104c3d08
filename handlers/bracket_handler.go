package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/bracket-service/services"
)

type BracketHandler struct {
	bracketService services.BracketService
	exportService  services.ExportService
}

func NewBracketHandler(bracketService services.BracketService, exportService services.ExportService) *BracketHandler {
	return &BracketHandler{
		bracketService: bracketService,
		exportService:  exportService,
	}
}

// Create строит (или целиком заменяет) сетку дивизиона из текущих
// регистраций.
func (h *BracketHandler) Create(w http.ResponseWriter, r *http.Request) {
	guildID, err := guildIDFromRequest(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	divisionID := chi.URLParam(r, "divisionID")

	state, err := h.bracketService.GenerateAndSaveBracket(r.Context(), guildID, divisionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"bracket": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Get отдаёт сетку. По умолчанию JSON; ?view=text возвращает текстовое
// представление, ?shrink=1 прячет завершённые ранние раунды.
func (h *BracketHandler) Get(w http.ResponseWriter, r *http.Request) {
	guildID, err := guildIDFromRequest(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	divisionID := chi.URLParam(r, "divisionID")

	if r.URL.Query().Get("view") == "text" {
		shrink := r.URL.Query().Get("shrink") == "1"
		rendered, err := h.bracketService.RenderBracket(r.Context(), guildID, divisionID, shrink)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		writePlainText(w, http.StatusOK, rendered+"\n")
		return
	}

	state, err := h.bracketService.GetBracket(r.Context(), guildID, divisionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) ReportWinner(w http.ResponseWriter, r *http.Request) {
	guildID, err := guildIDFromRequest(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	divisionID := chi.URLParam(r, "divisionID")
	matchID := chi.URLParam(r, "matchID")

	var input struct {
		WinnerSlot *int `json:"winner_slot"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.WinnerSlot == nil {
		badRequestResponse(w, r, errors.New("winner_slot is required (0 or 1)"))
		return
	}

	state, err := h.bracketService.ReportMatchWinner(r.Context(), guildID, divisionID, matchID, *input.WinnerSlot)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Simulate прогоняет турнир до чемпиона на копии сетки и возвращает
// снимок после каждого раунда. Сохранённая сетка не меняется.
func (h *BracketHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	guildID, err := guildIDFromRequest(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	divisionID := chi.URLParam(r, "divisionID")

	final, snapshots, err := h.bracketService.SimulateBracket(r.Context(), guildID, divisionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"final":     final,
		"snapshots": snapshots,
	}
	if finalMatch := final.FinalMatch(); finalMatch != nil {
		if winner := finalMatch.WinnerSlot(); winner != nil {
			response["champion"] = winner.Display()
		}
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) Captains(w http.ResponseWriter, r *http.Request) {
	guildID, err := guildIDFromRequest(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	divisionID := chi.URLParam(r, "divisionID")

	lines, err := h.bracketService.CaptainSummary(r.Context(), guildID, divisionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"captains": lines}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Publish выгружает текстовый снимок сетки (или симуляции, ?kind=simulation)
// в объектное хранилище и возвращает публичную ссылку.
func (h *BracketHandler) Publish(w http.ResponseWriter, r *http.Request) {
	guildID, err := guildIDFromRequest(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	divisionID := chi.URLParam(r, "divisionID")

	var export *services.BracketExport
	switch kind := r.URL.Query().Get("kind"); kind {
	case "", "bracket":
		export, err = h.exportService.PublishBracket(r.Context(), guildID, divisionID)
	case "simulation":
		export, err = h.exportService.PublishSimulation(r.Context(), guildID, divisionID)
	default:
		badRequestResponse(w, r, errors.New("kind must be either bracket or simulation"))
		return
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"export": export}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
