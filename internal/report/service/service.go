// Package service orchestrates the report lifecycle: validate, compose
// content, persist, and optionally relay. Handlers stay thin; stores stay
// pure I/O.
package service

import (
	"context"
	"errors"
	"log/slog"

	"metdesk/internal/notify"
	"metdesk/internal/platform/metrics"
	"metdesk/internal/report/models"
	"metdesk/internal/report/store"
	"metdesk/pkg/apperrors"
)

// ErrRelayFailed distinguishes "record persisted but the notification did not
// go out" from a failed submission. Callers receive it alongside the stored
// record; the record is never rolled back.
var ErrRelayFailed = errors.New("notification relay failed")

type Service struct {
	store     store.Store
	relay     notify.Relay
	recipient string
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func New(s store.Store, relay notify.Relay, recipient string, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:     s,
		relay:     relay,
		recipient: recipient,
		logger:    logger,
		metrics:   m,
	}
}

// Submit validates a candidate report, runs the content composition step, and
// persists it. Validation failures surface before any write; a duplicate
// sheetId surfaces as a conflict.
func (s *Service) Submit(ctx context.Context, candidate models.Report) (*models.Report, error) {
	validated, err := models.Validate(candidate)
	if err != nil {
		return nil, err
	}
	validated.ComposeContent()

	stored, err := s.store.Insert(ctx, &validated)
	if err != nil {
		return nil, s.translate(err)
	}
	s.metrics.ReportCreated(string(stored.Type))
	return stored, nil
}

// SubmitContact persists a contact submission and then relays the composed
// content to the configured recipient. A relay failure is reported via
// ErrRelayFailed with the persisted record still returned.
func (s *Service) SubmitContact(ctx context.Context, candidate models.Report) (*models.Report, error) {
	candidate.Type = models.TypeContact
	stored, err := s.Submit(ctx, candidate)
	if err != nil {
		return nil, err
	}

	if s.relay == nil || s.recipient == "" {
		return stored, nil
	}
	subject := stored.Subject
	if subject == "" {
		subject = "No Subject"
	}
	if err := s.relay.Send(ctx, s.recipient, "Contact Form: "+subject, stored.Content); err != nil {
		s.logger.WarnContext(ctx, "contact saved but notification failed",
			"report_id", stored.ID,
			"error", err,
		)
		return stored, ErrRelayFailed
	}
	return stored, nil
}

func (s *Service) ListByType(ctx context.Context, t models.ReportType) ([]*models.Report, error) {
	reports, err := s.store.FindByType(ctx, t)
	return reports, s.translate(err)
}

func (s *Service) ListByEmailAndType(ctx context.Context, email string, t models.ReportType) ([]*models.Report, error) {
	reports, err := s.store.FindByEmailAndType(ctx, email, t)
	return reports, s.translate(err)
}

func (s *Service) ListByStatus(ctx context.Context, status models.Status) ([]*models.Report, error) {
	reports, err := s.store.FindByStatus(ctx, status)
	return reports, s.translate(err)
}

func (s *Service) ListByStationAndSheetType(ctx context.Context, station models.Station, sheetType models.SheetType) ([]*models.Report, error) {
	reports, err := s.store.FindByStationAndSheetType(ctx, station, sheetType)
	return reports, s.translate(err)
}

func (s *Service) ListBySheetTypeAndMonth(ctx context.Context, sheetType models.SheetType, month models.Month) ([]*models.Report, error) {
	reports, err := s.store.FindBySheetTypeAndMonth(ctx, sheetType, month)
	return reports, s.translate(err)
}

// ClearType removes every report of a type, returning how many went away.
func (s *Service) ClearType(ctx context.Context, t models.ReportType) (int64, error) {
	removed, err := s.store.DeleteAllOfType(ctx, t)
	if err != nil {
		return 0, s.translate(err)
	}
	s.metrics.ReportDeleted(string(t), removed)
	return removed, nil
}

// Delete removes one report matching both type and id.
func (s *Service) Delete(ctx context.Context, t models.ReportType, id string) error {
	if err := s.store.DeleteOneOfType(ctx, t, id); err != nil {
		return s.translate(err)
	}
	s.metrics.ReportDeleted(string(t), 1)
	return nil
}

// UpsertSheet records or refreshes a sheet reference under its natural key.
func (s *Service) UpsertSheet(ctx context.Context, sheetID string, stn models.Station, sheetType models.SheetType, fields store.SheetFields) (*models.Report, error) {
	if sheetID == "" {
		return nil, apperrors.Validation("sheetId", "sheetId is required")
	}
	if !stn.Valid() {
		return nil, apperrors.Validation("station", "unknown station "+string(stn))
	}
	if !sheetType.Valid() {
		return nil, apperrors.Validation("sheetType", "unknown sheet type "+string(sheetType))
	}
	report, err := s.store.UpsertSheet(ctx, sheetID, stn, sheetType, fields)
	return report, s.translate(err)
}

// SendReport relays arbitrary report content by email.
func (s *Service) SendReport(ctx context.Context, to, subject, content string) error {
	if s.relay == nil {
		return apperrors.New(apperrors.CodeUnavailable, "email relay is not configured")
	}
	if to == "" {
		return apperrors.Validation("to", "recipient is required")
	}
	if content == "" {
		return apperrors.Validation("content", "content is required")
	}
	return s.relay.Send(ctx, to, subject, content)
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// translate maps store sentinels onto the coded errors handlers know how to
// render; anything else is a storage failure surfaced as internal.
func (s *Service) translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrConflict):
		return apperrors.New(apperrors.CodeConflict, "a record with this sheetId already exists")
	case errors.Is(err, store.ErrNotFound):
		return apperrors.New(apperrors.CodeNotFound, "report not found")
	default:
		return apperrors.Wrap(apperrors.CodeInternal, "storage failure", err)
	}
}
