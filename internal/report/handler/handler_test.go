package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"metdesk/internal/platform/middleware"
	"metdesk/internal/report/models"
	"metdesk/internal/report/service"
	"metdesk/internal/report/store"
	"metdesk/pkg/testutil"
)

// stubRelay lets tests flip relay failure per request.
type stubRelay struct {
	err error
}

func (s *stubRelay) Send(context.Context, string, string, string) error { return s.err }

// allowStation simulates an authenticated station without real tokens.
func allowStation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(middleware.WithStation(r.Context(), "JKIA")))
	})
}

type HandlerSuite struct {
	suite.Suite
	store  *store.MemoryStore
	relay  *stubRelay
	router chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	log := slog.New(slog.DiscardHandler)
	s.store = store.NewMemoryStore()
	s.relay = &stubRelay{}
	reports := service.New(s.store, s.relay, "inbox@example.com", log, nil)

	s.router = chi.NewRouter()
	New(reports, log).Register(s.router, allowStation)
}

func (s *HandlerSuite) submit(body any) *models.Report {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/reports", body)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	resp := testutil.UnmarshalResponse[struct {
		Report *models.Report `json:"report"`
	}](s.T(), rr)
	return resp.Report
}

func (s *HandlerSuite) TestSubmitReport() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/reports", map[string]string{
		"type":    "METAR",
		"content": "METAR HKJK 120800Z 12008KT 9999 FEW020 24/14 Q1021",
	})
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	resp := testutil.UnmarshalResponse[struct {
		Success bool           `json:"success"`
		Message string         `json:"message"`
		Report  *models.Report `json:"report"`
	}](s.T(), rr)
	s.True(resp.Success)
	s.Equal("Report saved successfully", resp.Message)
	s.Require().NotNil(resp.Report)
	s.NotEmpty(resp.Report.ID)
	s.Equal("203.0.113.9", resp.Report.IPAddress)
	s.Contains(resp.Report.UserAgent, "Chrome 120.0.0.0")
	s.NotContains(resp.Report.UserAgent, "Mozilla/5.0", "raw header should be condensed before storage")
}

func (s *HandlerSuite) TestNormalizeUserAgent() {
	s.Run("browser header condensed", func() {
		got := normalizeUserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		s.Contains(got, "Chrome 120.0.0.0")
	})
	s.Run("empty header stays empty", func() {
		s.Equal("", normalizeUserAgent(""))
	})
	s.Run("non-browser client still identified", func() {
		s.Contains(normalizeUserAgent("portal/1.0"), "portal")
	})
}

func (s *HandlerSuite) TestSubmitReportValidationError() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/reports", map[string]string{"type": "METAR"})
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	testutil.AssertErrorCode(s.T(), rr, "validation_failed")
}

func (s *HandlerSuite) TestSubmitReportMalformedBody() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/reports", nil)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
}

func (s *HandlerSuite) TestSubmitDuplicateSheetID() {
	s.submit(map[string]string{"type": "SHEET", "content": "ref", "sheetId": "dup"})

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/reports", map[string]string{
		"type": "SHEET", "content": "ref", "sheetId": "dup",
	})
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusConflict)
	testutil.AssertErrorCode(s.T(), rr, "conflict")
}

func (s *HandlerSuite) TestContactFlow() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/contact", map[string]string{
		"name":    "Jane",
		"email":   "jane@example.com",
		"subject": "Feedback",
		"message": "Nice portal.",
	})
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	resp := testutil.UnmarshalResponse[struct {
		Message string         `json:"message"`
		Report  *models.Report `json:"report"`
	}](s.T(), rr)
	s.Equal("Message received", resp.Message)
	s.Equal("Contact Form: Feedback\n\nNice portal.", resp.Report.Content)
}

func (s *HandlerSuite) TestContactRelayFailureStillCreated() {
	s.relay.err = errors.New("smtp down")

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/contact", map[string]string{
		"name": "Jane", "email": "jane@example.com", "message": "hello",
	})
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	resp := testutil.UnmarshalResponse[struct {
		Message string `json:"message"`
	}](s.T(), rr)
	s.Equal("Message saved but the notification email failed", resp.Message)
}

func (s *HandlerSuite) TestListByType() {
	s.submit(map[string]string{"type": "SYNOP", "content": "AAXX 1"})
	s.submit(map[string]string{"type": "SYNOP", "content": "AAXX 2"})
	s.submit(map[string]string{"type": "METAR", "content": "METAR X"})

	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/reports/SYNOP")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	reports := testutil.UnmarshalResponse[[]*models.Report](s.T(), rr)
	s.Len(*reports, 2)
}

func (s *HandlerSuite) TestListUnknownTypeRejected() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/reports/PIREP")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
}

func (s *HandlerSuite) TestListByTypeEmptyIsJSONArray() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/reports/TAF")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.JSONEq("[]", rr.Body.String())
}

func (s *HandlerSuite) TestListByEmailFilter() {
	s.submit(map[string]string{"type": "CONTACT", "name": "A", "email": "a@example.com", "message": "one"})
	s.submit(map[string]string{"type": "CONTACT", "name": "B", "email": "b@example.com", "message": "two"})

	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/reports/CONTACT?email=a@example.com")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	reports := testutil.UnmarshalResponse[[]*models.Report](s.T(), rr)
	s.Require().Len(*reports, 1)
	s.Equal("a@example.com", (*reports)[0].Email)
}

func (s *HandlerSuite) TestListByStatus() {
	s.submit(map[string]string{"type": "METAR", "content": "x"})

	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/reports/status/NEW")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	reports := testutil.UnmarshalResponse[[]*models.Report](s.T(), rr)
	s.Len(*reports, 1)
}

func (s *HandlerSuite) TestClearType() {
	s.submit(map[string]string{"type": "ACTUALS", "content": "a"})
	s.submit(map[string]string{"type": "ACTUALS", "content": "b"})

	req := testutil.NewRequest(s.T(), http.MethodDelete, "/api/reports/clear/ACTUALS")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[struct {
		Message      string `json:"message"`
		DeletedCount int64  `json:"deletedCount"`
	}](s.T(), rr)
	s.Equal(int64(2), resp.DeletedCount)
	s.Equal("Successfully deleted 2 ACTUALS reports", resp.Message)
}

func (s *HandlerSuite) TestDeleteOne() {
	stored := s.submit(map[string]string{"type": "METAR", "content": "x"})

	req := testutil.NewRequest(s.T(), http.MethodDelete, "/api/reports/clear/METAR/"+stored.ID)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusOK)

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodDelete, "/api/reports/clear/METAR/"+stored.ID))
	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
	testutil.AssertErrorCode(s.T(), rr, "not_found")
}

func (s *HandlerSuite) TestSendReport() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/send-report", map[string]string{
		"to":      "ops@example.com",
		"subject": "Daily summary",
		"content": "All stations reported.",
	})
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
}

func (s *HandlerSuite) TestSendReportMissingRecipient() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/send-report", map[string]string{
		"content": "x",
	})
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
}
