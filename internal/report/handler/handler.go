// Package handler exposes the report routes. Handlers decode, delegate to the
// service, and translate errors; no business logic lives here.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mssola/useragent"

	"metdesk/internal/http/shared"
	"metdesk/internal/platform/middleware"
	"metdesk/internal/report/models"
	"metdesk/internal/report/service"
	"metdesk/pkg/apperrors"
)

type Handler struct {
	logger  *slog.Logger
	reports *service.Service
}

func New(reports *service.Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, reports: reports}
}

// Register wires the report routes. Destructive routes sit behind the station
// auth middleware; submission and reads are open to the portal.
func (h *Handler) Register(r chi.Router, requireStation func(http.Handler) http.Handler) {
	r.Post("/api/reports", h.handleSubmit)
	r.Post("/api/contact", h.handleContact)
	r.Get("/api/reports/{type}", h.handleList)
	r.Get("/api/reports/status/{status}", h.handleListByStatus)
	r.Post("/api/send-report", h.handleSendReport)

	r.Group(func(r chi.Router) {
		r.Use(requireStation)
		r.Delete("/api/reports/clear/{type}", h.handleClearType)
		r.Delete("/api/reports/clear/{type}/{id}", h.handleDeleteOne)
	})
}

type submitRequest struct {
	Type          string `json:"type"`
	Content       string `json:"content"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Subject       string `json:"subject"`
	Message       string `json:"message"`
	Station       string `json:"station"`
	Month         string `json:"month"`
	ObservationID string `json:"observationId"`
}

func (req submitRequest) toReport(r *http.Request) models.Report {
	return models.Report{
		Type:          models.ReportType(req.Type),
		Content:       req.Content,
		Name:          req.Name,
		Email:         req.Email,
		Subject:       req.Subject,
		Message:       req.Message,
		Station:       models.Station(req.Station),
		Month:         models.Month(req.Month),
		ObservationID: req.ObservationID,
		IPAddress:     middleware.ClientIP(r),
		UserAgent:     normalizeUserAgent(r.UserAgent()),
	}
}

// normalizeUserAgent condenses the raw User-Agent header into a readable
// browser/OS summary before it is persisted with the report. Headers the
// parser cannot classify are kept verbatim.
func normalizeUserAgent(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if name == "" {
		return raw
	}
	summary := name
	if version != "" {
		summary += " " + version
	}
	if os := ua.OS(); os != "" {
		summary += " (" + os + ")"
	}
	if ua.Bot() {
		summary += " [bot]"
	}
	return summary
}

type submitResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Report  *models.Report `json:"report,omitempty"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, apperrors.New(apperrors.CodeBadRequest, "invalid request body"))
		return
	}

	stored, err := h.reports.Submit(r.Context(), req.toReport(r))
	if err != nil {
		h.warn(r, "report submission rejected", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, submitResponse{
		Success: true,
		Message: "Report saved successfully",
		Report:  stored,
	})
}

// handleContact is the contact-form path: forces the CONTACT type and relays
// the composed message to the configured inbox. A relay failure still returns
// 201 because the record is already persisted; the body says the notification
// did not go out.
func (h *Handler) handleContact(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, apperrors.New(apperrors.CodeBadRequest, "invalid request body"))
		return
	}

	stored, err := h.reports.SubmitContact(r.Context(), req.toReport(r))
	if err != nil {
		if errors.Is(err, service.ErrRelayFailed) {
			shared.WriteJSON(w, http.StatusCreated, submitResponse{
				Success: true,
				Message: "Message saved but the notification email failed",
				Report:  stored,
			})
			return
		}
		h.warn(r, "contact submission rejected", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, submitResponse{
		Success: true,
		Message: "Message received",
		Report:  stored,
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reportType, ok := parseType(w, r)
	if !ok {
		return
	}

	var (
		reports []*models.Report
		err     error
	)
	if email := r.URL.Query().Get("email"); email != "" {
		reports, err = h.reports.ListByEmailAndType(r.Context(), email, reportType)
	} else {
		reports, err = h.reports.ListByType(r.Context(), reportType)
	}
	if err != nil {
		h.warn(r, "report listing failed", err)
		shared.WriteError(w, err)
		return
	}
	if reports == nil {
		reports = []*models.Report{}
	}
	shared.WriteJSON(w, http.StatusOK, reports)
}

func (h *Handler) handleListByStatus(w http.ResponseWriter, r *http.Request) {
	status := models.Status(chi.URLParam(r, "status"))
	if !status.Valid() {
		shared.WriteError(w, apperrors.Validation("status", "unknown status "+string(status)))
		return
	}
	reports, err := h.reports.ListByStatus(r.Context(), status)
	if err != nil {
		h.warn(r, "report listing failed", err)
		shared.WriteError(w, err)
		return
	}
	if reports == nil {
		reports = []*models.Report{}
	}
	shared.WriteJSON(w, http.StatusOK, reports)
}

type clearResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

func (h *Handler) handleClearType(w http.ResponseWriter, r *http.Request) {
	reportType, ok := parseType(w, r)
	if !ok {
		return
	}
	removed, err := h.reports.ClearType(r.Context(), reportType)
	if err != nil {
		h.warn(r, "clear reports failed", err)
		shared.WriteError(w, err)
		return
	}
	h.logger.InfoContext(r.Context(), "reports cleared",
		"type", reportType,
		"count", removed,
		"station", middleware.GetStation(r.Context()),
	)
	shared.WriteJSON(w, http.StatusOK, clearResponse{
		Message:      fmt.Sprintf("Successfully deleted %d %s reports", removed, reportType),
		DeletedCount: removed,
	})
}

func (h *Handler) handleDeleteOne(w http.ResponseWriter, r *http.Request) {
	reportType, ok := parseType(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.reports.Delete(r.Context(), reportType, id); err != nil {
		h.warn(r, "delete report failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{
		"message": string(reportType) + " report deleted successfully",
	})
}

type sendReportRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

func (h *Handler) handleSendReport(w http.ResponseWriter, r *http.Request) {
	var req sendReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, apperrors.New(apperrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := h.reports.SendReport(r.Context(), req.To, req.Subject, req.Content); err != nil {
		h.warn(r, "send report failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Report sent successfully",
	})
}

func parseType(w http.ResponseWriter, r *http.Request) (models.ReportType, bool) {
	reportType := models.ReportType(chi.URLParam(r, "type"))
	if !reportType.Valid() {
		shared.WriteError(w, apperrors.Validation("type", "unknown report type "+string(reportType)))
		return "", false
	}
	return reportType, true
}

func (h *Handler) warn(r *http.Request, msg string, err error) {
	h.logger.WarnContext(r.Context(), msg,
		"error", err.Error(),
		"request_id", middleware.GetRequestID(r.Context()),
	)
}
