package main

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"clientListWebsite/internal/models"
)

// Form fallbacks of the sort editor. Each one applies a single edit and
// sends the browser back to the page with the editor open.

const sortEditorURL = "/?sort=open"

func redirectToSortEditor(w http.ResponseWriter, r *http.Request, errMessage string) {
	target := sortEditorURL
	if errMessage != "" {
		target += "&error=" + url.QueryEscape(errMessage)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (app *App) handleSortFormAdd(w http.ResponseWriter, r *http.Request) {
	app.clientList(r).AddCriterion(r.Context())
	redirectToSortEditor(w, r, "")
}

func (app *App) handleSortFormRemove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if v := NewValidator().ValidateCriterionID(id, "id"); v.HasErrors() {
		redirectToSortEditor(w, r, v.ErrorString())
		return
	}

	app.clientList(r).RemoveCriterion(r.Context(), id)
	redirectToSortEditor(w, r, "")
}

func (app *App) handleSortFormUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch models.SortCriterionPatch
	if value := r.PostFormValue("field"); value != "" {
		field := models.SortField(value)
		patch.Field = &field
	}
	if value := r.PostFormValue("direction"); value != "" {
		direction := models.SortDirection(value)
		patch.Direction = &direction
	}

	v := NewValidator().
		ValidateCriterionID(id, "id").
		ValidateSortField(patch.Field, "field").
		ValidateSortDirection(patch.Direction, "direction")
	if v.HasErrors() {
		redirectToSortEditor(w, r, v.ErrorString())
		return
	}

	if _, err := app.clientList(r).UpdateCriterion(r.Context(), id, patch); err != nil {
		redirectToSortEditor(w, r, err.Error())
		return
	}
	redirectToSortEditor(w, r, "")
}

func (app *App) handleSortFormUp(w http.ResponseWriter, r *http.Request) {
	app.shiftCriterion(w, r, -1)
}

func (app *App) handleSortFormDown(w http.ResponseWriter, r *http.Request) {
	app.shiftCriterion(w, r, 1)
}

// shiftCriterion moves a criterion one place towards the front (-1) or back (+1)
func (app *App) shiftCriterion(w http.ResponseWriter, r *http.Request, delta int) {
	id := mux.Vars(r)["id"]
	if v := NewValidator().ValidateCriterionID(id, "id"); v.HasErrors() {
		redirectToSortEditor(w, r, v.ErrorString())
		return
	}

	if _, err := app.clientList(r).ShiftCriterion(r.Context(), id, delta); err != nil {
		redirectToSortEditor(w, r, "Cannot move the sort criterion any further")
		return
	}
	redirectToSortEditor(w, r, "")
}
