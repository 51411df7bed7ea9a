package store

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"

	"metdesk/internal/report/models"
)

type MemoryStoreSuite struct {
	suite.Suite
	ctx   context.Context
	clock *clockwork.FakeClock
	store *MemoryStore
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clockwork.NewFakeClockAt(time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC))
	s.store = NewMemoryStoreWithClock(s.clock)
}

func (s *MemoryStoreSuite) insert(r models.Report) *models.Report {
	stored, err := s.store.Insert(s.ctx, &r)
	s.Require().NoError(err)
	return stored
}

func (s *MemoryStoreSuite) TestInsertAssignsIDAndCreatedAt() {
	stored := s.insert(models.Report{Type: models.TypeMETAR, Content: "METAR HKJK NIL"})

	s.NotEmpty(stored.ID)
	s.Equal(s.clock.Now(), stored.CreatedAt)
}

func (s *MemoryStoreSuite) TestInsertDuplicateSheetIDConflicts() {
	s.insert(models.Report{Type: models.TypeSheet, SheetID: "sheet-1"})

	_, err := s.store.Insert(s.ctx, &models.Report{Type: models.TypeSheet, SheetID: "sheet-1"})
	s.ErrorIs(err, ErrConflict)
}

func (s *MemoryStoreSuite) TestEmptySheetIDNeverConflicts() {
	s.insert(models.Report{Type: models.TypeMETAR, Content: "one"})
	s.insert(models.Report{Type: models.TypeMETAR, Content: "two"})

	reports, err := s.store.FindByType(s.ctx, models.TypeMETAR)
	s.Require().NoError(err)
	s.Len(reports, 2)
}

func (s *MemoryStoreSuite) TestFindByTypeNewestFirst() {
	s.insert(models.Report{Type: models.TypeSYNOP, Content: "first"})
	s.clock.Advance(time.Minute)
	s.insert(models.Report{Type: models.TypeSYNOP, Content: "second"})
	s.clock.Advance(time.Minute)
	s.insert(models.Report{Type: models.TypeMETAR, Content: "other type"})

	reports, err := s.store.FindByType(s.ctx, models.TypeSYNOP)
	s.Require().NoError(err)
	s.Require().Len(reports, 2)
	s.Equal("second", reports[0].Content)
	s.Equal("first", reports[1].Content)
}

func (s *MemoryStoreSuite) TestFindByEmailAndType() {
	s.insert(models.Report{Type: models.TypeContact, Email: "a@example.com", Message: "one"})
	s.insert(models.Report{Type: models.TypeContact, Email: "b@example.com", Message: "two"})

	reports, err := s.store.FindByEmailAndType(s.ctx, "a@example.com", models.TypeContact)
	s.Require().NoError(err)
	s.Require().Len(reports, 1)
	s.Equal("one", reports[0].Message)
}

func (s *MemoryStoreSuite) TestFindByStatus() {
	s.insert(models.Report{Type: models.TypeMETAR, Content: "x", Status: models.StatusNew})
	s.insert(models.Report{Type: models.TypeTAF, Content: "y", Status: models.StatusProcessed})

	reports, err := s.store.FindByStatus(s.ctx, models.StatusProcessed)
	s.Require().NoError(err)
	s.Require().Len(reports, 1)
	s.Equal(models.TypeTAF, reports[0].Type)
}

func (s *MemoryStoreSuite) TestSheetLookups() {
	s.insert(models.Report{
		Type: models.TypeSheet, SheetID: "s1", Station: models.StationJKIA,
		SheetType: models.SheetCSheet, Month: "JAN",
	})
	s.insert(models.Report{
		Type: models.TypeSheet, SheetID: "s2", Station: models.StationWilson,
		SheetType: models.SheetCSheet, Month: "FEB",
	})

	byStation, err := s.store.FindByStationAndSheetType(s.ctx, models.StationJKIA, models.SheetCSheet)
	s.Require().NoError(err)
	s.Require().Len(byStation, 1)
	s.Equal("s1", byStation[0].SheetID)

	byMonth, err := s.store.FindBySheetTypeAndMonth(s.ctx, models.SheetCSheet, "FEB")
	s.Require().NoError(err)
	s.Require().Len(byMonth, 1)
	s.Equal("s2", byMonth[0].SheetID)
}

func (s *MemoryStoreSuite) TestDeleteAllOfType() {
	s.insert(models.Report{Type: models.TypeMETAR, Content: "a"})
	s.insert(models.Report{Type: models.TypeMETAR, Content: "b"})
	s.insert(models.Report{Type: models.TypeSYNOP, Content: "c"})

	removed, err := s.store.DeleteAllOfType(s.ctx, models.TypeMETAR)
	s.Require().NoError(err)
	s.Equal(int64(2), removed)

	left, err := s.store.FindByType(s.ctx, models.TypeSYNOP)
	s.Require().NoError(err)
	s.Len(left, 1)
}

func (s *MemoryStoreSuite) TestDeleteAllOfTypeEmptyIsZero() {
	removed, err := s.store.DeleteAllOfType(s.ctx, models.TypeTAF)
	s.Require().NoError(err)
	s.Zero(removed)
}

func (s *MemoryStoreSuite) TestDeleteOneOfType() {
	stored := s.insert(models.Report{Type: models.TypeACTUALS, Content: "a"})

	s.Require().NoError(s.store.DeleteOneOfType(s.ctx, models.TypeACTUALS, stored.ID))
	s.ErrorIs(s.store.DeleteOneOfType(s.ctx, models.TypeACTUALS, stored.ID), ErrNotFound)
}

func (s *MemoryStoreSuite) TestDeleteOneOfTypeRequiresMatchingType() {
	stored := s.insert(models.Report{Type: models.TypeACTUALS, Content: "a"})

	err := s.store.DeleteOneOfType(s.ctx, models.TypeMETAR, stored.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *MemoryStoreSuite) TestUpsertSheetInsertsThenUpdates() {
	first, err := s.store.UpsertSheet(s.ctx, "s1", models.StationMabMet, models.SheetForm626, SheetFields{
		SheetURL: "https://docs.google.com/spreadsheets/d/s1",
	})
	s.Require().NoError(err)
	s.Equal(models.TypeSheet, first.Type)
	s.Equal(models.StatusNew, first.Status)
	s.Nil(first.UpdatedAt)

	s.clock.Advance(time.Hour)
	second, err := s.store.UpsertSheet(s.ctx, "s1", models.StationMabMet, models.SheetForm626, SheetFields{
		Status: models.StatusProcessed,
		Month:  "MAR",
	})
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
	s.Equal(models.StatusProcessed, second.Status)
	s.Equal(models.Month("MAR"), second.Month)
	s.Equal("https://docs.google.com/spreadsheets/d/s1", second.SheetURL, "empty fields leave prior values alone")
	s.Require().NotNil(second.UpdatedAt)
	s.Equal(s.clock.Now(), *second.UpdatedAt)
}

func (s *MemoryStoreSuite) TestUpsertSheetDistinctNaturalKeysConflictOnSheetID() {
	_, err := s.store.UpsertSheet(s.ctx, "s1", models.StationMabMet, models.SheetForm626, SheetFields{})
	s.Require().NoError(err)

	// Same sheetID under a different station is a new natural key, and the
	// sparse sheetID uniqueness rejects it.
	_, err = s.store.UpsertSheet(s.ctx, "s1", models.StationJKIA, models.SheetForm626, SheetFields{})
	s.ErrorIs(err, ErrConflict)
}
