package controller

import (
	"context"
	"net/http"
)

type contextKey string

const sessionIDKey contextKey = "sessionID"

// WithSessionID stores the visitor's session id on the request context.
// The session middleware calls this after reading or minting the session
// cookie.
func WithSessionID(r *http.Request, sessionID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), sessionIDKey, sessionID))
}

// SessionID returns the visitor's session id from the request context
func SessionID(r *http.Request) string {
	if id, ok := r.Context().Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}
