package web

import (
	"context"
	"net/http"
	"time"
)

// helloGet proxies the configured GitHub profile.
func (s *Server) helloGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Profiles.Profile(r.Context(), s.cfg.GitHubLogin)
	if err != nil {
		s.logger.Error(r.Context(), "github lookup failed", "login", s.cfg.GitHubLogin, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) helloMessage(msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": msg})
	}
}

// send mails the welcome template to the configured demo recipient.
func (s *Server) send(w http.ResponseWriter, r *http.Request) {
	if s.deps.Welcomer == nil {
		writeError(w, http.StatusServiceUnavailable, "email is not configured")
		return
	}

	id, err := s.deps.Welcomer.SendWelcome(r.Context(), s.cfg.EmailTo, s.cfg.EmailFirstName)
	if err != nil {
		s.logger.Error(r.Context(), "welcome email failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.deps.DB.PingContext(ctx); err != nil {
		s.logger.Warn(r.Context(), "database ping failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
