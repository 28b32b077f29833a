package main

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"clientListWebsite/internal/storage"
	"clientListWebsite/internal/utils"
)

const (
	visitorSessionName = "client-list-session"
	prefsCookieName    = "client-list-prefs"
	csrfHeader         = "X-CSRF-Token"
	csrfFormField      = "csrf_token"
)

func (app *App) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer wrapper to capture status code
		wrapper := &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		AppLogger.WithFields(map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"duration_ms": time.Since(start).Milliseconds(),
			"status_code": wrapper.statusCode,
			"remote_addr": r.RemoteAddr,
			"user_agent":  r.UserAgent(),
		}).Info("HTTP request completed")
	})
}

// responseWriterWrapper wraps http.ResponseWriter to capture status code
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (app *App) RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				AppLogger.WithFields(map[string]interface{}{
					"method":      r.Method,
					"path":        r.URL.Path,
					"panic":       fmt.Sprintf("%v", err),
					"remote_addr": r.RemoteAddr,
					"stack":       string(debug.Stack()),
				}).Error("Panic recovered in HTTP handler")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// VisitorMiddleware identifies the browser with a long-lived session cookie
// holding a visitor id and CSRF token, issuing both on the first request.
// The request and response writer are bound to the context for cookie-backed
// sort preferences.
func (app *App) VisitorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A cookie signed with an old secret yields a fresh session and an error; start over.
		session, err := app.SessionStore.Get(r, visitorSessionName)
		if err != nil {
			AppLogger.WithError(err).Debug("Discarding unreadable visitor session")
		}

		visitorID, _ := session.Values["visitor_id"].(string)
		csrfToken, _ := session.Values["csrf_token"].(string)

		if visitorID == "" || csrfToken == "" {
			if visitorID == "" {
				visitorID = uuid.NewString()
			}
			if csrfToken == "" {
				csrfToken, err = GenerateCSRFToken()
				if err != nil {
					AppLogger.WithError(err).Error("Failed to generate CSRF token")
					utils.InternalServerError(w, "Failed to start session")
					return
				}
			}

			session.Values["visitor_id"] = visitorID
			session.Values["csrf_token"] = csrfToken
			if err := session.Save(r, w); err != nil {
				AppLogger.WithError(err).Error("Failed to save visitor session")
				utils.InternalServerError(w, "Failed to start session")
				return
			}
			AppLogger.WithField("visitor_id", visitorID).Debug("New visitor session")
		}

		ctx := utils.WithVisitor(r.Context(), visitorID, csrfToken)
		ctx = storage.WithHTTP(ctx, w, r)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CSRFMiddleware rejects state-changing requests whose token does not match
// the visitor session. JSON clients send it in the X-CSRF-Token header, forms
// in the csrf_token field.
func (app *App) CSRFMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		expectedToken, ok := utils.GetCSRFToken(r)
		if !ok {
			utils.RespondWithError(w, http.StatusForbidden, "CSRF token not found in session")
			return
		}

		providedToken := r.Header.Get(csrfHeader)
		if providedToken == "" {
			providedToken = r.PostFormValue(csrfFormField)
		}

		if subtle.ConstantTimeCompare([]byte(providedToken), []byte(expectedToken)) != 1 {
			AppLogger.WithFields(map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
			}).Warn("CSRF token mismatch")
			utils.RespondWithError(w, http.StatusForbidden, "CSRF token mismatch")
			return
		}

		next.ServeHTTP(w, r)
	})
}
