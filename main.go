package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"clientListWebsite/internal/models"
	"clientListWebsite/internal/records"
	"clientListWebsite/internal/services"
	"clientListWebsite/internal/sorting"
	"clientListWebsite/internal/storage"
)

type App struct {
	Config       *Config
	DB           *sql.DB
	SessionStore sessions.Store
	Clients      []models.Client
	ClientLists  *services.ClientListRegistry
	RateLimiter  *RateLimiter
	Templates    *TemplateCache
}

func main() {
	config, err := LoadConfig()
	if err != nil {
		AppLogger.WithError(err).Fatal("Failed to load configuration")
	}
	InitializeLogger(config)

	sessionStore := newSessionStore(config)

	app := &App{
		Config:       config,
		SessionStore: sessionStore,
		Templates:    NewTemplateCache(assets),
		RateLimiter:  NewRateLimiter(config.RateLimitPerMinute, config.RateLimitBurst),
	}

	ctx := context.Background()

	app.Clients, err = loadClients(ctx, config)
	if err != nil {
		AppLogger.WithError(err).Fatal("Failed to load clients")
	}

	provider, err := app.sortPreferenceProvider(ctx)
	if err != nil {
		AppLogger.WithError(err).Fatal("Failed to set up sort preference storage")
	}
	if app.DB != nil {
		defer app.DB.Close()
	}

	locale, err := sorting.ParseLocale(config.Locale)
	if err != nil {
		AppLogger.WithError(err).WithField("locale", config.Locale).Fatal("Invalid LOCALE")
	}

	app.ClientLists = services.NewClientListRegistry(provider, sorting.NewEngine(locale), app.Clients, config.SessionCacheTTL, AppLogger.FieldLogger())
	defer app.ClientLists.Close()

	app.RateLimiter.StartCleanupRoutine()
	defer app.RateLimiter.Stop()

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           newRouter(app),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		AppLogger.WithFields(map[string]interface{}{
			"port":       config.Port,
			"sort_store": config.SortStore,
			"clients":    len(app.Clients),
			"locale":     locale.String(),
		}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			AppLogger.WithError(err).Fatal("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		AppLogger.WithError(err).Error("Graceful shutdown failed")
	}
	AppLogger.Info("Server stopped")
}

func newSessionStore(config *Config) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(config.SessionSecret))
	store.MaxAge(config.SessionMaxAge)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   config.SessionMaxAge,
		HttpOnly: true,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// sortPreferenceProvider builds the string store selected by SORT_STORE,
// opening the database when it is needed.
func (app *App) sortPreferenceProvider(ctx context.Context) (storage.Provider, error) {
	switch app.Config.SortStore {
	case SortStoreMemory:
		return storage.NewMemoryProvider(), nil
	case SortStoreCookie:
		return storage.NewCookieProvider(app.SessionStore, prefsCookieName), nil
	default:
		db, err := openDatabase(app.Config.DatabasePath)
		if err != nil {
			return nil, err
		}
		provider := storage.NewSQLiteProvider(db)
		if err := initDatabase(ctx, provider); err != nil {
			db.Close()
			return nil, err
		}
		app.DB = db
		return provider, nil
	}
}

// loadClients reads the client records from Google Sheets when a sheet is
// configured and falls back to the built-in sample data otherwise.
func loadClients(ctx context.Context, config *Config) ([]models.Client, error) {
	if config.GoogleSheetID == "" {
		AppLogger.Info("GOOGLE_SHEET_ID not set, using sample clients")
		return records.Load(ctx, records.MockSource{})
	}

	src := &records.SheetsSource{
		SpreadsheetID: config.GoogleSheetID,
		Range:         config.GoogleSheetRange,
	}
	if config.GoogleCredentialsFile != "" {
		creds, err := os.ReadFile(config.GoogleCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read Google credentials: %w", err)
		}
		src.CredentialsJSON = creds
	}

	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	clients, err := records.Load(loadCtx, src)
	if err != nil {
		return nil, err
	}
	AppLogger.WithFields(map[string]interface{}{
		"sheet_id": config.GoogleSheetID,
		"clients":  len(clients),
	}).Info("Loaded clients from Google Sheets")
	return clients, nil
}

func newRouter(app *App) *mux.Router {
	r := mux.NewRouter()

	r.Use(app.RecoveryMiddleware)
	r.Use(app.LoggingMiddleware)

	r.HandleFunc("/healthz", app.handleHealth).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS()))))

	pages := r.NewRoute().Subrouter()
	pages.Use(app.VisitorMiddleware)
	pages.HandleFunc("/", app.handleClientList).Methods(http.MethodGet)
	pages.HandleFunc("/api/clients", app.handleGetClients).Methods(http.MethodGet)
	pages.HandleFunc("/api/sort", app.handleGetSort).Methods(http.MethodGet)

	edits := pages.NewRoute().Subrouter()
	edits.Use(app.RateLimitMiddleware(app.RateLimiter))
	edits.Use(app.CSRFMiddleware)

	edits.HandleFunc("/api/sort", app.handleAddSort).Methods(http.MethodPost)
	edits.HandleFunc("/api/sort/reorder", app.handleReorderSort).Methods(http.MethodPost)
	edits.HandleFunc("/api/sort/move", app.handleMoveSort).Methods(http.MethodPost)
	edits.HandleFunc("/api/sort/{id}", app.handleUpdateSort).Methods(http.MethodPatch)
	edits.HandleFunc("/api/sort/{id}", app.handleDeleteSort).Methods(http.MethodDelete)

	edits.HandleFunc("/sort/add", app.handleSortFormAdd).Methods(http.MethodPost)
	edits.HandleFunc("/sort/{id}/remove", app.handleSortFormRemove).Methods(http.MethodPost)
	edits.HandleFunc("/sort/{id}/update", app.handleSortFormUpdate).Methods(http.MethodPost)
	edits.HandleFunc("/sort/{id}/up", app.handleSortFormUp).Methods(http.MethodPost)
	edits.HandleFunc("/sort/{id}/down", app.handleSortFormDown).Methods(http.MethodPost)

	return r
}
