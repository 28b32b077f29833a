package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"clientListWebsite/internal/models"
	"clientListWebsite/internal/sorting"
	"clientListWebsite/internal/utils"
)

const maxRequestBody = 64 << 10

// SortStateResponse is returned by every sort edit
type SortStateResponse struct {
	Changed   bool                   `json:"changed"`
	Criterion *models.SortCriterion  `json:"criterion,omitempty"`
	Criteria  []models.SortCriterion `json:"criteria"`
}

type ReorderRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

type MoveRequest struct {
	ActiveID string `json:"active_id"`
	OverID   string `json:"over_id"`
}

// decodeJSON reads a bounded JSON body into dst, rejecting unknown fields
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (app *App) handleGetSort(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithSuccess(w, http.StatusOK, app.clientList(r).Criteria(), "")
}

func (app *App) handleAddSort(w http.ResponseWriter, r *http.Request) {
	svc := app.clientList(r)
	c := svc.AddCriterion(r.Context())

	utils.RespondWithSuccess(w, http.StatusCreated, SortStateResponse{
		Changed:   true,
		Criterion: &c,
		Criteria:  svc.Criteria(),
	}, "Sort criterion added")
}

func (app *App) handleUpdateSort(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch models.SortCriterionPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		utils.BadRequestError(w, "Invalid JSON")
		return
	}

	v := NewValidator().
		ValidateCriterionID(id, "id").
		ValidateSortField(patch.Field, "field").
		ValidateSortDirection(patch.Direction, "direction")
	if v.HasErrors() {
		utils.ValidationError(w, v.ErrorString())
		return
	}

	svc := app.clientList(r)
	updated, err := svc.UpdateCriterion(r.Context(), id, patch)
	if err != nil {
		app.respondSortError(w, err)
		return
	}

	utils.RespondWithSuccess(w, http.StatusOK, SortStateResponse{
		Changed:  updated,
		Criteria: svc.Criteria(),
	}, "")
}

func (app *App) handleDeleteSort(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if v := NewValidator().ValidateCriterionID(id, "id"); v.HasErrors() {
		utils.ValidationError(w, v.ErrorString())
		return
	}

	svc := app.clientList(r)
	removed := svc.RemoveCriterion(r.Context(), id)

	utils.RespondWithSuccess(w, http.StatusOK, SortStateResponse{
		Changed:  removed,
		Criteria: svc.Criteria(),
	}, "")
}

func (app *App) handleReorderSort(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.BadRequestError(w, "Invalid JSON")
		return
	}
	if req.From == nil || req.To == nil {
		utils.ValidationError(w, "from and to are required")
		return
	}

	svc := app.clientList(r)
	if err := svc.ReorderCriteria(r.Context(), *req.From, *req.To); err != nil {
		app.respondSortError(w, err)
		return
	}

	utils.RespondWithSuccess(w, http.StatusOK, SortStateResponse{
		Changed:  *req.From != *req.To,
		Criteria: svc.Criteria(),
	}, "")
}

func (app *App) handleMoveSort(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.BadRequestError(w, "Invalid JSON")
		return
	}

	v := NewValidator().
		ValidateCriterionID(req.ActiveID, "active_id").
		ValidateCriterionID(req.OverID, "over_id")
	if v.HasErrors() {
		utils.ValidationError(w, v.ErrorString())
		return
	}

	svc := app.clientList(r)
	moved, err := svc.MoveCriterion(r.Context(), req.ActiveID, req.OverID)
	if err != nil {
		app.respondSortError(w, err)
		return
	}

	utils.RespondWithSuccess(w, http.StatusOK, SortStateResponse{
		Changed:  moved,
		Criteria: svc.Criteria(),
	}, "")
}

// respondSortError maps store errors to HTTP statuses
func (app *App) respondSortError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sorting.ErrIndexOutOfRange),
		errors.Is(err, sorting.ErrInvalidField),
		errors.Is(err, sorting.ErrInvalidDirection):
		utils.BadRequestError(w, err.Error())
	default:
		AppLogger.WithError(err).Error("Sort edit failed")
		utils.InternalServerError(w, "Failed to update sort")
	}
}
