// Package sheets resolves the external spreadsheet backing a station's form:
// from the static table when one is registered, otherwise by copying the form
// template through the Drive API. Resolved references are recorded as SHEET
// reports so the portal can list them later.
package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"metdesk/internal/platform/metrics"
	"metdesk/internal/report/models"
	"metdesk/internal/report/store"
	"metdesk/pkg/apperrors"
)

// Reference points at one external spreadsheet document.
type Reference struct {
	ID  string `json:"sheetId"`
	URL string `json:"sheetUrl"`
}

// StaticEntry registers a pre-existing sheet for a station and form type.
type StaticEntry struct {
	Station  models.Station
	FormType models.SheetType
	ID       string
	URL      string
}

// Recorder persists resolved references; implemented by the report service.
type Recorder interface {
	UpsertSheet(ctx context.Context, sheetID string, station models.Station, sheetType models.SheetType, fields store.SheetFields) (*models.Report, error)
}

type tableKey struct {
	station  models.Station
	formType models.SheetType
}

type Resolver struct {
	static    map[tableKey]Reference
	templates map[models.SheetType]string
	drive     *DriveClient
	recorder  Recorder
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewResolver builds a resolver over an immutable static table. drive may be
// nil when no Drive credentials are configured; template copies then fail
// with a descriptive error instead of silently substituting a sheet.
func NewResolver(static []StaticEntry, templates map[models.SheetType]string, drive *DriveClient, recorder Recorder, logger *slog.Logger, m *metrics.Metrics) *Resolver {
	table := make(map[tableKey]Reference, len(static))
	for _, entry := range static {
		table[tableKey{entry.Station, entry.FormType}] = Reference{ID: entry.ID, URL: entry.URL}
	}
	return &Resolver{
		static:    table,
		templates: templates,
		drive:     drive,
		recorder:  recorder,
		logger:    logger,
		metrics:   m,
	}
}

// Resolve maps a station + form type to a sheet reference. Lookup order:
// exact static entry, the first station's static entry for the same form
// (documented fallback), then a fresh template copy via Drive.
func (r *Resolver) Resolve(ctx context.Context, station models.Station, formType models.SheetType) (Reference, error) {
	if !station.Valid() {
		return Reference{}, apperrors.Validation("station", "unknown station "+string(station))
	}
	if !formType.Valid() {
		return Reference{}, apperrors.Validation("formType", "unknown form type "+string(formType))
	}

	if ref, ok := r.static[tableKey{station, formType}]; ok {
		r.record(ctx, ref, station, formType)
		return ref, nil
	}

	// Unresolved static lookups fall back to the first station's sheet for
	// the same form. The shared document is not recorded under the
	// requesting station; the sheetId belongs to the owning station.
	if ref, ok := r.static[tableKey{models.Stations[0], formType}]; ok {
		r.logger.InfoContext(ctx, "falling back to first station's sheet",
			"station", station,
			"form_type", formType,
		)
		return ref, nil
	}

	return r.copyTemplate(ctx, station, formType)
}

func (r *Resolver) copyTemplate(ctx context.Context, station models.Station, formType models.SheetType) (Reference, error) {
	templateID := r.templates[formType]
	if templateID == "" {
		return Reference{}, apperrors.New(apperrors.CodeNotFound,
			fmt.Sprintf("no sheet or template registered for form type %s", formType))
	}
	if r.drive == nil {
		return Reference{}, apperrors.New(apperrors.CodeUnavailable,
			"drive credentials are not configured; cannot copy template")
	}

	title := fmt.Sprintf("%s %s", station, formType)
	id, url, err := r.drive.CopyFile(ctx, templateID, title)
	if err != nil {
		return Reference{}, err
	}
	if err := r.drive.ShareAnyoneReader(ctx, id); err != nil {
		return Reference{}, err
	}
	r.metrics.SheetCopied()
	r.logger.InfoContext(ctx, "sheet copied from template",
		"station", station,
		"form_type", formType,
		"sheet_id", id,
	)

	ref := Reference{ID: id, URL: url}
	r.record(ctx, ref, station, formType)
	return ref, nil
}

func (r *Resolver) record(ctx context.Context, ref Reference, station models.Station, formType models.SheetType) {
	if r.recorder == nil {
		return
	}
	_, err := r.recorder.UpsertSheet(ctx, ref.ID, station, formType, store.SheetFields{SheetURL: ref.URL})
	if err != nil {
		// The reference itself is still usable; losing the record only
		// affects later listings.
		r.logger.WarnContext(ctx, "failed to record sheet reference",
			"sheet_id", ref.ID,
			"error", err,
		)
	}
}

// StationReference is one station's outcome within a ResolveAll fan-out.
type StationReference struct {
	Station models.Station `json:"station"`
	Ref     *Reference     `json:"ref,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// ResolveAll resolves one form type for every station concurrently. Failures
// are reported per station so one broken sheet does not hide the rest.
func (r *Resolver) ResolveAll(ctx context.Context, formType models.SheetType) ([]StationReference, error) {
	if !formType.Valid() {
		return nil, apperrors.Validation("formType", "unknown form type "+string(formType))
	}

	results := make([]StationReference, len(models.Stations))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(len(models.Stations))
	for i, station := range models.Stations {
		g.Go(func() error {
			ref, err := r.Resolve(ctx, station, formType)
			if err != nil {
				results[i] = StationReference{Station: station, Error: err.Error()}
				return nil
			}
			results[i] = StationReference{Station: station, Ref: &ref}
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

// DefaultTable lists the sheets that predate template copying; everything
// else is created on demand. Kept to the forms the stations actually share.
func DefaultTable() []StaticEntry {
	return []StaticEntry{
		{
			Station:  models.StationMabMet,
			FormType: models.SheetCSheet,
			ID:       "1kQ7pXeWn4vR8sT2uLbYhGmZcJdAo5fEiNqC3xHgVPyM",
			URL:      "https://docs.google.com/spreadsheets/d/1kQ7pXeWn4vR8sT2uLbYhGmZcJdAo5fEiNqC3xHgVPyM",
		},
		{
			Station:  models.StationMabMet,
			FormType: models.SheetWxSummary,
			ID:       "1aB9cDeFgHiJkLmNoPqRsTuVwXyZ0123456789abcdef",
			URL:      "https://docs.google.com/spreadsheets/d/1aB9cDeFgHiJkLmNoPqRsTuVwXyZ0123456789abcdef",
		},
		{
			Station:  models.StationDagoretti,
			FormType: models.SheetCSheet,
			ID:       "1Zy8Xw7Vu6Ts5Rq4Po3Nm2Lk1Ji0Hg9Fe8Dc7Ba6aBcD",
			URL:      "https://docs.google.com/spreadsheets/d/1Zy8Xw7Vu6Ts5Rq4Po3Nm2Lk1Ji0Hg9Fe8Dc7Ba6aBcD",
		},
	}
}
