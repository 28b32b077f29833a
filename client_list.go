package main

import (
	"net/http"

	"clientListWebsite/internal/models"
	"clientListWebsite/internal/services"
	"clientListWebsite/internal/utils"
)

// ClientListPage is the page data of the client list template
type ClientListPage struct {
	Clients  []models.Client
	Criteria []models.SortCriterion
	SortOpen bool
	Error    string
}

// clientList returns the session object of the requesting visitor
func (app *App) clientList(r *http.Request) *services.ClientListService {
	visitorID, _ := utils.GetVisitorID(r)
	return app.ClientLists.ForVisitor(r.Context(), visitorID)
}

func (app *App) handleClientList(w http.ResponseWriter, r *http.Request) {
	criteria, clients := app.clientList(r).View()

	page := ClientListPage{
		Clients:  clients,
		Criteria: criteria,
		SortOpen: r.URL.Query().Get("sort") == "open",
		Error:    r.URL.Query().Get("error"),
	}

	if err := app.RenderTemplateWithContext(w, r, "clients", "Clients", page); err != nil {
		AppLogger.WithError(err).Error("Failed to render client list")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (app *App) handleGetClients(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, app.clientList(r).OrderedClients())
}

func (app *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"clients":  len(app.Clients),
		"sessions": app.ClientLists.Active(),
	})
}
