package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"metdesk/internal/report/models"
)

// MemoryStore keeps reports in memory behind a RWMutex. It backs unit tests
// and local development; it intentionally favors clarity over performance.
type MemoryStore struct {
	mu      sync.RWMutex
	clock   clockwork.Clock
	reports []*models.Report
	seq     map[string]int
	nextSeq int
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(clockwork.NewRealClock())
}

// NewMemoryStoreWithClock lets tests pin CreatedAt/UpdatedAt timestamps.
func NewMemoryStoreWithClock(clock clockwork.Clock) *MemoryStore {
	return &MemoryStore{clock: clock, seq: make(map[string]int)}
}

func (s *MemoryStore) Insert(_ context.Context, report *models.Report) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(report)
}

func (s *MemoryStore) insertLocked(report *models.Report) (*models.Report, error) {
	if report.SheetID != "" {
		for _, existing := range s.reports {
			if existing.SheetID == report.SheetID {
				return nil, ErrConflict
			}
		}
	}

	stored := *report
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.clock.Now()
	}
	s.reports = append(s.reports, &stored)
	s.seq[stored.ID] = s.nextSeq
	s.nextSeq++

	result := stored
	return &result, nil
}

func (s *MemoryStore) FindByType(_ context.Context, t models.ReportType) ([]*models.Report, error) {
	return s.filter(func(r *models.Report) bool { return r.Type == t }), nil
}

func (s *MemoryStore) FindByEmailAndType(_ context.Context, email string, t models.ReportType) ([]*models.Report, error) {
	return s.filter(func(r *models.Report) bool { return r.Email == email && r.Type == t }), nil
}

func (s *MemoryStore) FindByStatus(_ context.Context, status models.Status) ([]*models.Report, error) {
	return s.filter(func(r *models.Report) bool { return r.Status == status }), nil
}

func (s *MemoryStore) FindByStationAndSheetType(_ context.Context, station models.Station, sheetType models.SheetType) ([]*models.Report, error) {
	return s.filter(func(r *models.Report) bool { return r.Station == station && r.SheetType == sheetType }), nil
}

func (s *MemoryStore) FindBySheetTypeAndMonth(_ context.Context, sheetType models.SheetType, month models.Month) ([]*models.Report, error) {
	return s.filter(func(r *models.Report) bool { return r.SheetType == sheetType && r.Month == month }), nil
}

func (s *MemoryStore) DeleteAllOfType(_ context.Context, t models.ReportType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []*models.Report
	var removed int64
	for _, r := range s.reports {
		if r.Type == t {
			removed++
			delete(s.seq, r.ID)
			continue
		}
		kept = append(kept, r)
	}
	s.reports = kept
	return removed, nil
}

func (s *MemoryStore) DeleteOneOfType(_ context.Context, t models.ReportType, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.reports {
		if r.ID == id && r.Type == t {
			s.reports = append(s.reports[:i], s.reports[i+1:]...)
			delete(s.seq, id)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) UpsertSheet(_ context.Context, sheetID string, station models.Station, sheetType models.SheetType, fields SheetFields) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.reports {
		if r.SheetID == sheetID && r.Station == station && r.SheetType == sheetType {
			applySheetFields(r, fields)
			now := s.clock.Now()
			r.UpdatedAt = &now
			result := *r
			return &result, nil
		}
	}

	report := &models.Report{
		Type:      models.TypeSheet,
		Status:    models.StatusNew,
		SheetID:   sheetID,
		Station:   station,
		SheetType: sheetType,
	}
	applySheetFields(report, fields)
	return s.insertLocked(report)
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func applySheetFields(r *models.Report, fields SheetFields) {
	if fields.SheetURL != "" {
		r.SheetURL = fields.SheetURL
	}
	if fields.Month != "" {
		r.Month = fields.Month
	}
	if fields.Status != "" {
		r.Status = fields.Status
	}
	if fields.Content != "" {
		r.Content = fields.Content
	}
}

// filter copies matches and orders them by CreatedAt descending, newest
// insertion first on equal timestamps.
func (s *MemoryStore) filter(match func(*models.Report) bool) []*models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*models.Report
	for _, r := range s.reports {
		if match(r) {
			copied := *r
			results = append(results, &copied)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		if !results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		}
		return s.seq[results[i].ID] > s.seq[results[j].ID]
	})
	return results
}
