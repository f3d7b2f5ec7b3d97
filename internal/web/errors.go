package web

// errors.go turns handler errors into responses.
//
// The technical error is logged with the request ID; the client sees the
// mapped core.UserMessage, as JSON for API routes and as an HTML alert for
// pages.

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/fauxlizer/internal/core"
	"github.com/JonMunkholm/fauxlizer/internal/logging"
	"github.com/JonMunkholm/fauxlizer/internal/web/templates"
)

// ErrorResponse is the JSON body of an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes the user-facing version of it.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)
	technical := err
	var ue *core.UserError
	if errors.As(err, &ue) {
		userMsg = ue.User
		technical = ue.Technical
	}

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", technical.Error(),
		"code", userMsg.Code,
	)

	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, statusCode)
		return
	}
	respondErrorHTML(w, r, userMsg, statusCode)
}

func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// respondErrorHTML renders the error alert above a fresh upload form.
func respondErrorHTML(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)

	page := templates.Page("Validation failed", templates.ErrorPage(msg.Message, msg.Action, msg.Code))
	if err := page.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render error page", "error", err)
	}
}

// wantsJSON reports whether the client should get a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
