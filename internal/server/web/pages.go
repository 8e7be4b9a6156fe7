package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/invoicedash/internal/common"
	"github.com/dmitrijs2005/invoicedash/internal/money"
	"github.com/dmitrijs2005/invoicedash/internal/server/github"
	"github.com/dmitrijs2005/invoicedash/internal/server/models"
	"github.com/dmitrijs2005/invoicedash/internal/server/objstore"
)

type invoiceView struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	Amount     string `json:"amount"`
	Status     string `json:"status"`
	Date       string `json:"date"`
}

type customerView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url,omitempty"`
	TotalInvoices int64  `json:"total_invoices,omitempty"`
	TotalPending  string `json:"total_pending,omitempty"`
	TotalPaid     string `json:"total_paid,omitempty"`
}

func rowView(r models.InvoiceRow) invoiceView {
	return invoiceView{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		Name:       r.Name,
		Email:      r.Email,
		ImageURL:   r.ImageURL,
		Amount:     money.FormatUSD(r.Amount),
		Status:     string(r.Status),
		Date:       r.Date,
	}
}

func rowViews(rows []models.InvoiceRow) []invoiceView {
	out := make([]invoiceView, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowView(r))
	}
	return out
}

func customerViews(list []models.Customer) []customerView {
	out := make([]customerView, 0, len(list))
	for _, c := range list {
		out = append(out, customerView{ID: c.ID, Name: c.Name, Email: c.Email, ImageURL: c.ImageURL})
	}
	return out
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"title":     "Acme Dashboard",
		"login":     common.LoginPath,
		"dashboard": common.DashboardPath,
	})
}

func (s *Server) loginForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"action": common.LoginPath,
		"fields": []string{"email", "password"},
	})
}

func (s *Server) registerForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"action": "/register",
		"fields": []string{"email", "name", "password", "confirm-password"},
	})
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	ov, err := s.deps.Invoices.Overview(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	p := PrincipalFrom(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"user": map[string]string{"id": p.UserID, "email": p.Email},
		"cards": map[string]any{
			"collected":       money.FormatUSD(ov.Invoices.TotalPaid),
			"pending":         money.FormatUSD(ov.Invoices.TotalPending),
			"total_invoices":  ov.Invoices.Count,
			"total_customers": ov.Customers,
		},
		"latest_invoices": rowViews(ov.Latest),
	})
}

// listInvoices answers 304 while neither the list nor the query changed.
func (s *Server) listInvoices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	variant := url.Values{"query": {query}, "page": {strconv.Itoa(page)}}.Encode()
	if s.deps.Views.NotModified(w, r, common.InvoicesPath, variant) {
		return
	}

	res, err := s.deps.Invoices.List(r.Context(), query, page)
	if err != nil {
		w.Header().Del("ETag")
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":       query,
		"page":        res.Page,
		"total_pages": res.TotalPages,
		"total":       res.Total,
		"invoices":    rowViews(res.Items),
	})
}

func (s *Server) createInvoiceForm(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Customers.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"action":    common.InvoicesPath + "/create",
		"customers": customerViews(list),
		"statuses":  models.InvoiceStatuses,
	})
}

// getInvoice serves both the detail and the edit form.
func (s *Server) getInvoice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	inv, err := s.deps.Invoices.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "invoice not found")
			return
		}
		s.internalError(w, r, err)
		return
	}

	list, err := s.deps.Customers.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"action": common.InvoicesPath + "/" + id + "/edit",
		"invoice": invoiceView{
			ID:         inv.ID,
			CustomerID: inv.CustomerID,
			Amount:     money.Format(inv.Amount),
			Status:     string(inv.Status),
			Date:       inv.Date,
		},
		"customers": customerViews(list),
		"statuses":  models.InvoiceStatuses,
	})
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	list, err := s.deps.Customers.ListFiltered(r.Context(), query)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	out := make([]customerView, 0, len(list))
	for _, c := range list {
		out = append(out, customerView{
			ID:            c.ID,
			Name:          c.Name,
			Email:         c.Email,
			ImageURL:      c.ImageURL,
			TotalInvoices: c.TotalInvoices,
			TotalPending:  money.FormatUSD(c.TotalPending),
			TotalPaid:     money.FormatUSD(c.TotalPaid),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": query, "customers": out})
}

// customerAvatar hands out a presigned PUT for the customer's image.
func (s *Server) customerAvatar(w http.ResponseWriter, r *http.Request) {
	values, err := formValues(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed form")
		return
	}

	up, err := s.deps.Customers.AvatarUpload(r.Context(), r.PathValue("id"), values.Get("contentType"))
	switch {
	case errors.Is(err, objstore.ErrUnsupportedType):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "customer not found")
		return
	case err != nil:
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"upload_url": up.URL,
		"image_url":  up.PublicURL,
		"key":        up.Key,
		"expires_at": up.Expires.UTC().Format(time.RFC3339),
	})
}

func (s *Server) githubProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Profiles.Profile(r.Context(), s.cfg.GitHubLogin)
	if err != nil {
		if errors.Is(err, github.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.logger.Error(r.Context(), "github lookup failed", "login", s.cfg.GitHubLogin, "error", err)
		writeError(w, http.StatusBadGateway, "github unavailable")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
