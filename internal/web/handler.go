// Package web serves the admin dashboard over HTTP.
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kkkkikiki/lukitas/internal/campaignform"
	"github.com/kkkkikiki/lukitas/internal/service"
	"github.com/kkkkikiki/lukitas/internal/web/routepath"
	"github.com/kkkkikiki/lukitas/internal/web/templates"
)

// Handler serves the dashboard pages and form actions.
type Handler struct {
	svc *service.DashboardService
}

// NewHandler returns the dashboard HTTP handler with logging and metrics
// middleware applied.
func NewHandler(svc *service.DashboardService, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{svc: svc}
	return withLogging(logger, h.routes())
}

func (h *Handler) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleDashboard)
	mux.HandleFunc("POST /accounts/{id}/balance", h.handleUpdateBalance)
	mux.HandleFunc("POST /campaigns/{id}/toggle", h.handleToggleCampaign)
	mux.HandleFunc("POST "+routepath.CampaignNew, h.handleOpenCampaignForm)
	mux.HandleFunc("POST "+routepath.CampaignNewCancel, h.handleCancelCampaignForm)
	mux.HandleFunc("POST "+routepath.Campaigns, h.handleCreateCampaign)
	mux.HandleFunc("GET "+routepath.Health, h.handleHealth)
	mux.HandleFunc("GET "+routepath.HealthBackend, h.handleBackendHealth)
	mux.Handle("GET "+routepath.Metrics, promhttp.Handler())
	return mux
}

// handleDashboard renders the dashboard. The first request, or one with
// reload=1, fetches fresh data from the backend.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if h.svc.State() == service.StateLoading || query.Get("reload") == "1" {
		// a failed load queues its own alert
		_ = h.svc.Load(r.Context())
	}

	// queued alerts come first: a reload that failed after an action
	// is reported before that action's own message
	view := buildDashboardView(h.svc.Snapshot(), normalizeTab(query.Get("tab")),
		h.svc.TakeAlert(), strings.TrimSpace(query.Get("message")))
	if view.Modal != nil {
		view.Modal.Submitting = h.svc.Submitting()
	}
	h.renderDashboard(w, r, http.StatusOK, view)
}

func (h *Handler) renderDashboard(w http.ResponseWriter, r *http.Request, status int, view templates.DashboardView) {
	renderPage(w, r, status, templates.DashboardPage(view), templates.DashboardFullPage(view))
}

// handleUpdateBalance sets the balance of one account from the saldo field.
func (h *Handler) handleUpdateBalance(w http.ResponseWriter, r *http.Request) {
	if !requireSameOrigin(w, r) {
		return
	}
	accountID, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "unable to parse form", http.StatusBadRequest)
		return
	}

	message, err := h.svc.UpdateBalance(r.Context(), accountID, r.PostForm.Get("saldo"))
	if errors.Is(err, service.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	writeRedirect(w, r, tabWithMessage(templates.TabUsers, message))
}

// handleToggleCampaign flips the active flag of one campaign.
func (h *Handler) handleToggleCampaign(w http.ResponseWriter, r *http.Request) {
	if !requireSameOrigin(w, r) {
		return
	}
	campaignID, ok := pathID(w, r)
	if !ok {
		return
	}

	message, err := h.svc.ToggleCampaign(r.Context(), campaignID)
	if errors.Is(err, service.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	writeRedirect(w, r, tabWithMessage(templates.TabCampaigns, message))
}

func (h *Handler) handleOpenCampaignForm(w http.ResponseWriter, r *http.Request) {
	if !requireSameOrigin(w, r) {
		return
	}
	h.svc.OpenCampaignForm()
	writeRedirect(w, r, routepath.DashboardTab(templates.TabCampaigns))
}

func (h *Handler) handleCancelCampaignForm(w http.ResponseWriter, r *http.Request) {
	if !requireSameOrigin(w, r) {
		return
	}
	if err := h.svc.CloseCampaignForm(); errors.Is(err, service.ErrBusy) {
		writeRedirect(w, r, tabWithMessage(templates.TabCampaigns, service.AlertSubmitInProgress))
		return
	}
	writeRedirect(w, r, routepath.DashboardTab(templates.TabCampaigns))
}

// handleCreateCampaign validates and submits the new-campaign form. Invalid
// input and backend failures re-render the modal with what was typed.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	if !requireSameOrigin(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "unable to parse form", http.StatusBadRequest)
		return
	}

	form := campaignform.FromValues(r.PostForm)
	fieldErrors, message, err := h.svc.CreateCampaign(r.Context(), form)
	switch {
	case err == nil:
		writeRedirect(w, r, tabWithMessage(templates.TabCampaigns, message))
	case errors.Is(err, service.ErrBusy):
		writeRedirect(w, r, tabWithMessage(templates.TabCampaigns, message))
	case errors.Is(err, service.ErrValidation):
		h.renderCampaignModal(w, r, http.StatusUnprocessableEntity, form, fieldErrors, "")
	default:
		h.renderCampaignModal(w, r, http.StatusBadGateway, form, fieldErrors, message)
	}
}

func (h *Handler) renderCampaignModal(w http.ResponseWriter, r *http.Request, status int, form campaignform.Form, fieldErrors campaignform.Errors, message string) {
	view := buildDashboardView(h.svc.Snapshot(), templates.TabCampaigns, message)
	view.Modal = &templates.CampaignModalView{Form: form, Errors: fieldErrors}
	h.renderDashboard(w, r, status, view)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	hostname, _ := os.Hostname()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"service":  "lukitas-admin",
		"hostname": hostname,
		"state":    h.svc.State().String(),
	})
}

func (h *Handler) handleBackendHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		loggerFrom(r.Context()).Warn("backend health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "error",
			"message": "backend unavailable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "backend": "connected"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func normalizeTab(tab string) string {
	if tab == templates.TabCampaigns {
		return templates.TabCampaigns
	}
	return templates.TabUsers
}

func tabWithMessage(tab, message string) string {
	location := routepath.DashboardTab(tab)
	if message == "" {
		return location
	}
	return routepath.AppendQueryParam(location, "message", message)
}
