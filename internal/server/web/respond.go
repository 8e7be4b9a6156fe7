package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/invoicedash/internal/server/actions"
	"github.com/dmitrijs2005/invoicedash/internal/server/forms"
)

// maxFormBytes caps form bodies.
const maxFormBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

// formState mirrors what a form needs to redisplay after a failed submit.
type formState struct {
	Errors  forms.FieldErrors `json:"errors,omitempty"`
	Message string            `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// formValues reads urlencoded and multipart bodies alike.
func formValues(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxFormBytes); err != nil {
			return nil, err
		}
		return r.PostForm, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

// writeOutcome maps an action result onto HTTP: redirects become 303 (with
// session cookies when the action signed someone in), failures 422 with the
// form state, successes 200.
func (s *Server) writeOutcome(w http.ResponseWriter, r *http.Request, out actions.Outcome, err error) {
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	switch out.Kind {
	case actions.Redirect:
		if out.Session != nil {
			s.setSession(w, out.Session.AccessToken, out.Session.RefreshToken)
		}
		http.Redirect(w, r, out.Location, http.StatusSeeOther)
	case actions.Failure:
		writeJSON(w, http.StatusUnprocessableEntity, formState{Errors: out.FieldErrors, Message: out.Message})
	default:
		writeJSON(w, http.StatusOK, formState{Message: out.Message})
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		s.logger.Warn(r.Context(), "request cancelled", "error", err)
	} else {
		s.logger.Error(r.Context(), "request failed", "error", err)
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
