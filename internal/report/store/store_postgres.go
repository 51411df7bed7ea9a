package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"metdesk/internal/report/models"
)

// PostgresStore persists reports in PostgreSQL. It is pure I/O: validation and
// content composition happen in the service before anything reaches here.
// Sparse sheet_id uniqueness and the sheet natural key are both enforced by
// partial unique indexes, never by check-then-insert in application code.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id             uuid PRIMARY KEY,
	type           text NOT NULL,
	content        text NOT NULL DEFAULT '',
	name           text NOT NULL DEFAULT '',
	email          text NOT NULL DEFAULT '',
	subject        text NOT NULL DEFAULT '',
	message        text NOT NULL DEFAULT '',
	status         text NOT NULL DEFAULT 'NEW',
	sheet_type     text,
	sheet_id       text,
	sheet_url      text NOT NULL DEFAULT '',
	station        text,
	month          text,
	observation_id text NOT NULL DEFAULT '',
	ip_address     text NOT NULL DEFAULT '',
	user_agent     text NOT NULL DEFAULT '',
	created_at     timestamptz NOT NULL DEFAULT now(),
	updated_at     timestamptz
);
CREATE UNIQUE INDEX IF NOT EXISTS reports_sheet_id_key
	ON reports (sheet_id) WHERE sheet_id IS NOT NULL;
CREATE UNIQUE INDEX IF NOT EXISTS reports_sheet_natural_key
	ON reports (sheet_id, station, sheet_type) WHERE sheet_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS reports_type_created_at_idx ON reports (type, created_at DESC);
CREATE INDEX IF NOT EXISTS reports_email_type_idx ON reports (email, type);
CREATE INDEX IF NOT EXISTS reports_status_idx ON reports (status);
CREATE INDEX IF NOT EXISTS reports_station_sheet_type_idx ON reports (station, sheet_type);
CREATE INDEX IF NOT EXISTS reports_sheet_type_month_idx ON reports (sheet_type, month);
`

// EnsureSchema creates the reports table and its secondary indexes.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure reports schema: %w", err)
	}
	return nil
}

const reportColumns = `id, type, content, name, email, subject, message, status,
	sheet_type, sheet_id, sheet_url, station, month, observation_id,
	ip_address, user_agent, created_at, updated_at`

func (s *PostgresStore) Insert(ctx context.Context, report *models.Report) (*models.Report, error) {
	stored := *report
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err := s.db.ExecContext(ctx, query,
		stored.ID,
		string(stored.Type),
		stored.Content,
		stored.Name,
		stored.Email,
		stored.Subject,
		stored.Message,
		string(stored.Status),
		nullable(string(stored.SheetType)),
		nullable(stored.SheetID),
		stored.SheetURL,
		nullable(string(stored.Station)),
		nullable(string(stored.Month)),
		stored.ObservationID,
		stored.IPAddress,
		stored.UserAgent,
		stored.CreatedAt,
		stored.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("insert report: %w", err)
	}
	return &stored, nil
}

func (s *PostgresStore) FindByType(ctx context.Context, t models.ReportType) ([]*models.Report, error) {
	return s.query(ctx, `WHERE type = $1`, string(t))
}

func (s *PostgresStore) FindByEmailAndType(ctx context.Context, email string, t models.ReportType) ([]*models.Report, error) {
	return s.query(ctx, `WHERE email = $1 AND type = $2`, email, string(t))
}

func (s *PostgresStore) FindByStatus(ctx context.Context, status models.Status) ([]*models.Report, error) {
	return s.query(ctx, `WHERE status = $1`, string(status))
}

func (s *PostgresStore) FindByStationAndSheetType(ctx context.Context, station models.Station, sheetType models.SheetType) ([]*models.Report, error) {
	return s.query(ctx, `WHERE station = $1 AND sheet_type = $2`, string(station), string(sheetType))
}

func (s *PostgresStore) FindBySheetTypeAndMonth(ctx context.Context, sheetType models.SheetType, month models.Month) ([]*models.Report, error) {
	return s.query(ctx, `WHERE sheet_type = $1 AND month = $2`, string(sheetType), string(month))
}

func (s *PostgresStore) DeleteAllOfType(ctx context.Context, t models.ReportType) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE type = $1`, string(t))
	if err != nil {
		return 0, fmt.Errorf("delete reports of type %s: %w", t, err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete reports of type %s: %w", t, err)
	}
	return removed, nil
}

func (s *PostgresStore) DeleteOneOfType(ctx context.Context, t models.ReportType, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = $1 AND type = $2`, id, string(t))
	if err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) UpsertSheet(ctx context.Context, sheetID string, station models.Station, sheetType models.SheetType, fields SheetFields) (*models.Report, error) {
	query := `
		INSERT INTO reports (id, type, status, sheet_type, sheet_id, sheet_url, station, month, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (sheet_id, station, sheet_type) WHERE sheet_id IS NOT NULL DO UPDATE SET
			sheet_url  = CASE WHEN EXCLUDED.sheet_url <> '' THEN EXCLUDED.sheet_url ELSE reports.sheet_url END,
			month      = COALESCE(EXCLUDED.month, reports.month),
			status     = EXCLUDED.status,
			content    = CASE WHEN EXCLUDED.content <> '' THEN EXCLUDED.content ELSE reports.content END,
			updated_at = now()
		RETURNING ` + reportColumns + `
	`
	status := fields.Status
	if status == "" {
		status = models.StatusNew
	}
	row := s.db.QueryRowContext(ctx, query,
		uuid.NewString(),
		string(models.TypeSheet),
		string(status),
		nullable(string(sheetType)),
		nullable(sheetID),
		fields.SheetURL,
		nullable(string(station)),
		nullable(string(fields.Month)),
		fields.Content,
	)
	report, err := scanReport(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("upsert sheet %s: %w", sheetID, err)
	}
	return report, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) query(ctx context.Context, where string, args ...any) ([]*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports ` + where + ` ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*models.Report, error) {
	var (
		r         models.Report
		sheetType sql.NullString
		sheetID   sql.NullString
		station   sql.NullString
		month     sql.NullString
		updatedAt sql.NullTime
	)
	err := row.Scan(
		&r.ID,
		&r.Type,
		&r.Content,
		&r.Name,
		&r.Email,
		&r.Subject,
		&r.Message,
		&r.Status,
		&sheetType,
		&sheetID,
		&r.SheetURL,
		&station,
		&month,
		&r.ObservationID,
		&r.IPAddress,
		&r.UserAgent,
		&r.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.SheetType = models.SheetType(sheetType.String)
	r.SheetID = sheetID.String
	r.Station = models.Station(station.String)
	r.Month = models.Month(month.String)
	if updatedAt.Valid {
		t := updatedAt.Time
		r.UpdatedAt = &t
	}
	return &r, nil
}

// nullable maps "" to NULL so the partial unique indexes only see real values.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
