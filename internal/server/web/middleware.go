package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/invoicedash/internal/common"
	"github.com/dmitrijs2005/invoicedash/internal/server/auth"
	"github.com/dmitrijs2005/invoicedash/internal/server/gate"
	"github.com/google/uuid"
)

type contextKey string

const principalKey contextKey = "principal"

// PrincipalFrom returns the signed-in user, or nil.
func PrincipalFrom(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(principalKey).(*auth.Claims)
	return c
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", reqID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request",
			"request_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// withPrincipal resolves the session cookies. An expired access token is
// renewed from the refresh token when possible; anything unusable is cleared.
func (s *Server) withPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims := s.resolvePrincipal(w, r); claims != nil {
			r = r.WithContext(context.WithValue(r.Context(), principalKey, claims))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) resolvePrincipal(w http.ResponseWriter, r *http.Request) *auth.Claims {
	if c, err := r.Cookie(common.AccessTokenHeaderName); err == nil && c.Value != "" {
		claims, err := s.deps.Sessions.ParseAccessToken(c.Value)
		if err == nil {
			return claims
		}
	}

	c, err := r.Cookie(common.RefreshTokenCookieName)
	if err != nil || c.Value == "" {
		return nil
	}

	pair, err := s.deps.Sessions.RefreshToken(r.Context(), c.Value)
	if err != nil {
		if !errors.Is(err, common.ErrRefreshTokenExpired) && !errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Error(r.Context(), "session refresh failed", "error", err)
		}
		s.clearSession(w)
		return nil
	}

	claims, err := s.deps.Sessions.ParseAccessToken(pair.AccessToken)
	if err != nil {
		s.logger.Error(r.Context(), "fresh access token rejected", "error", err)
		return nil
	}
	s.setSession(w, pair.AccessToken, pair.RefreshToken)
	return claims
}

// page applies the route gate.
func (s *Server) page(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch gate.Decide(PrincipalFrom(r.Context()) != nil, r.URL.Path) {
		case gate.Deny:
			http.Redirect(w, r, common.LoginPath, http.StatusFound)
		case gate.RedirectToDashboard:
			http.Redirect(w, r, common.DashboardPath, http.StatusFound)
		default:
			h(w, r)
		}
	})
}

func (s *Server) setSession(w http.ResponseWriter, access, refresh string) {
	http.SetCookie(w, s.cookie(common.AccessTokenHeaderName, access, s.cfg.AccessTokenValidityDuration))
	http.SetCookie(w, s.cookie(common.RefreshTokenCookieName, refresh, s.cfg.RefreshTokenValidityDuration))
}

func (s *Server) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie(common.AccessTokenHeaderName, "", -1))
	http.SetCookie(w, s.cookie(common.RefreshTokenCookieName, "", -1))
}

// cookie builds a session cookie; a negative ttl deletes it.
func (s *Server) cookie(name, value string, ttl time.Duration) *http.Cookie {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
