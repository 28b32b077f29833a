package utils

import (
	"context"
	"net/http"
)

type contextKey string

const (
	VisitorIDKey contextKey = "visitor_id"
	CSRFTokenKey contextKey = "csrf_token"
)

// WithVisitor stores the visitor id and CSRF token of the current browser
func WithVisitor(ctx context.Context, visitorID, csrfToken string) context.Context {
	ctx = context.WithValue(ctx, VisitorIDKey, visitorID)
	return context.WithValue(ctx, CSRFTokenKey, csrfToken)
}

// GetVisitorID extracts the visitor id from request context
func GetVisitorID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(VisitorIDKey).(string)
	return id, ok && id != ""
}

// GetCSRFToken extracts CSRF token from request context
func GetCSRFToken(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(CSRFTokenKey).(string)
	return token, ok && token != ""
}
