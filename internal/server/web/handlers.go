package web

import (
	"net/http"

	"github.com/dmitrijs2005/invoicedash/internal/common"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	values, err := formValues(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed form")
		return
	}
	out, err := s.deps.Actions.Authenticate(r.Context(), values)
	s.writeOutcome(w, r, out, err)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	values, err := formValues(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed form")
		return
	}
	out, err := s.deps.Actions.Register(r.Context(), values)
	s.writeOutcome(w, r, out, err)
}

// logout revokes the refresh token, if any, and always clears the cookies.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(common.RefreshTokenCookieName); err == nil && c.Value != "" {
		if err := s.deps.Sessions.Logout(r.Context(), c.Value); err != nil {
			s.logger.Warn(r.Context(), "refresh token not revoked", "error", err)
		}
	}
	s.clearSession(w)
	http.Redirect(w, r, common.LoginPath, http.StatusSeeOther)
}

func (s *Server) createInvoice(w http.ResponseWriter, r *http.Request) {
	values, err := formValues(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed form")
		return
	}
	out, err := s.deps.Actions.CreateInvoice(r.Context(), values)
	s.writeOutcome(w, r, out, err)
}

func (s *Server) updateInvoice(w http.ResponseWriter, r *http.Request) {
	values, err := formValues(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed form")
		return
	}
	out, err := s.deps.Actions.UpdateInvoice(r.Context(), r.PathValue("id"), values)
	s.writeOutcome(w, r, out, err)
}

func (s *Server) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	out, err := s.deps.Actions.DeleteInvoice(r.Context(), r.PathValue("id"))
	s.writeOutcome(w, r, out, err)
}
