// Package store persists reports. Implementations are interface-driven so the
// service layer can run against the in-memory store in tests and PostgreSQL in
// production without rewiring.
package store

import (
	"context"

	"metdesk/internal/report/models"
	"metdesk/pkg/platform/sentinel"
)

// Store-level failures reuse the shared sentinels so services translate them
// uniformly.
var (
	ErrNotFound    = sentinel.ErrNotFound
	ErrConflict    = sentinel.ErrConflict
	ErrUnavailable = sentinel.ErrUnavailable
)

// SheetFields are the mutable fields the sheet upsert path may apply. Nothing
// else on a persisted report is ever updated in place.
type SheetFields struct {
	SheetURL string
	Month    models.Month
	Status   models.Status
	Content  string
}

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks Store

type Store interface {
	// Insert persists a new report, assigning ID and CreatedAt when unset.
	// A duplicate non-empty SheetID yields ErrConflict.
	Insert(ctx context.Context, report *models.Report) (*models.Report, error)

	// Reads return results ordered by CreatedAt descending; an empty result
	// is valid, not an error.
	FindByType(ctx context.Context, t models.ReportType) ([]*models.Report, error)
	FindByEmailAndType(ctx context.Context, email string, t models.ReportType) ([]*models.Report, error)
	FindByStatus(ctx context.Context, status models.Status) ([]*models.Report, error)
	FindByStationAndSheetType(ctx context.Context, station models.Station, sheetType models.SheetType) ([]*models.Report, error)
	FindBySheetTypeAndMonth(ctx context.Context, sheetType models.SheetType, month models.Month) ([]*models.Report, error)

	// DeleteAllOfType removes every report of the given type and returns the
	// count removed; zero is success.
	DeleteAllOfType(ctx context.Context, t models.ReportType) (int64, error)

	// DeleteOneOfType removes the report matching both type and id, returning
	// ErrNotFound when no report matches.
	DeleteOneOfType(ctx context.Context, t models.ReportType, id string) error

	// UpsertSheet matches on the natural key {sheetID, station, sheetType};
	// on a match it applies fields and refreshes UpdatedAt, otherwise it
	// inserts a new SHEET report. Implementations must not allow concurrent
	// callers to create duplicate natural keys.
	UpsertSheet(ctx context.Context, sheetID string, station models.Station, sheetType models.SheetType, fields SheetFields) (*models.Report, error)

	// Ping reports backend health for readiness checks, returning an error
	// wrapping ErrUnavailable when the backend cannot be reached.
	Ping(ctx context.Context) error
}
