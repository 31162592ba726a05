// Package apierr turns backend client errors into dashboard HTTP responses.
package apierr

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/emtdash/internal/auth"
	"github.com/2beens/emtdash/internal/emtapi"
	"github.com/2beens/emtdash/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SessionDropper removes a dashboard session, used once the backend stopped
// accepting the session's token.
type SessionDropper interface {
	Drop(ctx context.Context, token string) error
}

// Status maps a backend client error to the status code and message sent to the browser.
//
//	backend 401         -> 401
//	backend 403 / 404   -> same
//	other backend 4xx   -> 400 with the backend's message
//	everything else     -> 502
func Status(err error) (int, string) {
	var apiErr *emtapi.APIError
	switch {
	case errors.Is(err, emtapi.ErrUnauthorized):
		return http.StatusUnauthorized, "session expired"
	case errors.Is(err, emtapi.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden:
		return http.StatusForbidden, apiErr.Message
	case errors.As(err, &apiErr) && emtapi.IsClientError(err):
		return http.StatusBadRequest, apiErr.Message
	default:
		return http.StatusBadGateway, "backend unavailable"
	}
}

// WriteBackendError logs err, drops the request's session on a backend 401 and
// writes the mapped error response. dropper may be nil.
func WriteBackendError(w http.ResponseWriter, r *http.Request, op string, err error, dropper SessionDropper) {
	status, msg := Status(err)

	if status == http.StatusUnauthorized && dropper != nil {
		if session, ok := auth.SessionFromContext(r.Context()); ok {
			if dropErr := dropper.Drop(context.WithoutCancel(r.Context()), session.Token); dropErr != nil {
				log.Errorf("%s: drop session %s: %s", op, pkg.TokenHint(session.Token), dropErr)
			} else {
				log.Infof("%s: backend rejected token, session %s dropped", op, pkg.TokenHint(session.Token))
			}
		}
	}

	if status == http.StatusBadGateway {
		log.Errorf("%s: %s", op, err)
	} else {
		log.Debugf("%s: %s", op, err)
	}

	http.Error(w, msg, status)
}

// BackendToken returns the backend token of the request's session.
func BackendToken(r *http.Request) (string, bool) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		return "", false
	}
	return session.BackendToken, true
}

// RequireBackendToken is BackendToken writing a 401 when the request has no session.
func RequireBackendToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	token, ok := BackendToken(r)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
	}
	return token, ok
}

// PathID reads a positive numeric path variable, writing a 400 otherwise.
func PathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := pkg.ParsePositiveInt(name, mux.Vars(r)[name])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
