package sheets

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"metdesk/internal/report/models"
	"metdesk/internal/report/service"
	"metdesk/internal/report/store"
	"metdesk/pkg/testutil"
)

type SheetsHandlerSuite struct {
	suite.Suite
	reports *service.Service
	router  chi.Router
}

func TestSheetsHandlerSuite(t *testing.T) {
	suite.Run(t, new(SheetsHandlerSuite))
}

func (s *SheetsHandlerSuite) SetupTest() {
	log := slog.New(slog.DiscardHandler)
	s.reports = service.New(store.NewMemoryStore(), nil, "", log, nil)

	static := []StaticEntry{
		{Station: models.StationMabMet, FormType: models.SheetCSheet, ID: "mab-cs", URL: "https://docs.google.com/spreadsheets/d/mab-cs"},
		{Station: models.StationJKIA, FormType: models.SheetCSheet, ID: "jkia-cs", URL: "https://docs.google.com/spreadsheets/d/jkia-cs"},
	}
	resolver := NewResolver(static, nil, nil, s.reports, log, nil)

	s.router = chi.NewRouter()
	NewHandler(resolver, s.reports, log).Register(s.router)
}

func (s *SheetsHandlerSuite) TestResolveStation() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/sheets/JKIA/CSHEET")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	ref := testutil.UnmarshalResponse[Reference](s.T(), rr)
	s.Equal("jkia-cs", ref.ID)
}

func (s *SheetsHandlerSuite) TestResolveUnknownStation() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/sheets/Nanyuki/CSHEET")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	testutil.AssertErrorCode(s.T(), rr, "validation_failed")
}

func (s *SheetsHandlerSuite) TestResolveAll() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/sheets/CSHEET")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	results := testutil.UnmarshalResponse[[]StationReference](s.T(), rr)
	s.Len(*results, len(models.Stations))
}

func (s *SheetsHandlerSuite) TestListRecordsByStation() {
	_, err := s.reports.UpsertSheet(context.Background(), "s1", models.StationWilson, models.SheetWxSummary, store.SheetFields{
		SheetURL: "https://docs.google.com/spreadsheets/d/s1",
	})
	s.Require().NoError(err)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/sheets?station=Wilson&sheetType=WX_SUMMARY")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	records := testutil.UnmarshalResponse[[]*models.Report](s.T(), rr)
	s.Require().Len(*records, 1)
	s.Equal("s1", (*records)[0].SheetID)
}

func (s *SheetsHandlerSuite) TestListRecordsByMonth() {
	_, err := s.reports.UpsertSheet(context.Background(), "s2", models.StationJKIA, models.SheetWxSummary, store.SheetFields{
		Month: "MAY",
	})
	s.Require().NoError(err)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/sheets?sheetType=WX_SUMMARY&month=MAY")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	records := testutil.UnmarshalResponse[[]*models.Report](s.T(), rr)
	s.Len(*records, 1)
}

func (s *SheetsHandlerSuite) TestListRecordsRequiresSheetType() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/sheets?station=JKIA")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
}
