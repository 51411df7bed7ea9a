package sheets

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"metdesk/internal/http/shared"
	"metdesk/internal/platform/middleware"
	"metdesk/internal/report/models"
	"metdesk/internal/report/service"
	"metdesk/pkg/apperrors"
)

// Handler exposes the sheet resolution routes and the record listings backed
// by the sheet secondary indexes.
type Handler struct {
	logger   *slog.Logger
	resolver *Resolver
	reports  *service.Service
}

func NewHandler(resolver *Resolver, reports *service.Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, resolver: resolver, reports: reports}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/api/sheets/{station}/{formType}", h.handleResolve)
	r.Get("/api/sheets/{formType}", h.handleResolveAll)
	r.Get("/api/sheets", h.handleListRecords)
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	station := models.Station(chi.URLParam(r, "station"))
	formType := models.SheetType(chi.URLParam(r, "formType"))

	ref, err := h.resolver.Resolve(r.Context(), station, formType)
	if err != nil {
		h.warn(r, "sheet resolution failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, ref)
}

func (h *Handler) handleResolveAll(w http.ResponseWriter, r *http.Request) {
	formType := models.SheetType(chi.URLParam(r, "formType"))

	refs, err := h.resolver.ResolveAll(r.Context(), formType)
	if err != nil {
		h.warn(r, "sheet fan-out failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, refs)
}

// handleListRecords serves the sheet record listings: station+sheetType, or
// sheetType+month. Both come back newest first.
func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	station := models.Station(q.Get("station"))
	sheetType := models.SheetType(q.Get("sheetType"))
	month := models.Month(q.Get("month"))

	if sheetType == "" {
		shared.WriteError(w, apperrors.Validation("sheetType", "sheetType is required"))
		return
	}

	var (
		reports []*models.Report
		err     error
	)
	switch {
	case station != "":
		reports, err = h.reports.ListByStationAndSheetType(r.Context(), station, sheetType)
	case month != "":
		reports, err = h.reports.ListBySheetTypeAndMonth(r.Context(), sheetType, month)
	default:
		shared.WriteError(w, apperrors.Validation("station", "station or month is required"))
		return
	}
	if err != nil {
		h.warn(r, "sheet record listing failed", err)
		shared.WriteError(w, err)
		return
	}
	if reports == nil {
		reports = []*models.Report{}
	}
	shared.WriteJSON(w, http.StatusOK, reports)
}

func (h *Handler) warn(r *http.Request, msg string, err error) {
	h.logger.WarnContext(r.Context(), msg,
		"error", err.Error(),
		"request_id", middleware.GetRequestID(r.Context()),
	)
}
