// Package models defines the Report record, its closed enumerations, and the
// validation and content-composition rules applied before persistence.
package models

import "time"

// ReportType discriminates what a Report carries. It is immutable after
// creation and decides which other fields are required.
type ReportType string

const (
	TypeMETAR   ReportType = "METAR"
	TypeSYNOP   ReportType = "SYNOP"
	TypeACTUALS ReportType = "ACTUALS"
	TypeTAF     ReportType = "TAF"
	TypeContact ReportType = "CONTACT"
	TypeSheet   ReportType = "SHEET"
)

var reportTypes = map[ReportType]bool{
	TypeMETAR:   true,
	TypeSYNOP:   true,
	TypeACTUALS: true,
	TypeTAF:     true,
	TypeContact: true,
	TypeSheet:   true,
}

func (t ReportType) Valid() bool { return reportTypes[t] }

// Status tracks downstream processing. There are no automatic transitions;
// callers set it explicitly.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusProcessed Status = "PROCESSED"
	StatusArchived  Status = "ARCHIVED"
)

func (s Status) Valid() bool {
	return s == StatusNew || s == StatusProcessed || s == StatusArchived
}

// SheetType identifies a form kind. Empty means absent.
type SheetType string

const (
	SheetForm626   SheetType = "FORM626"
	SheetCSheet    SheetType = "CSHEET"
	SheetForm446   SheetType = "FORM446"
	SheetWxSummary SheetType = "WX_SUMMARY"
	SheetRCart     SheetType = "RCART"
	SheetAgro18Dek SheetType = "AGRO18_DEK"
)

var sheetTypes = map[SheetType]bool{
	SheetForm626:   true,
	SheetCSheet:    true,
	SheetForm446:   true,
	SheetWxSummary: true,
	SheetRCart:     true,
	SheetAgro18Dek: true,
}

func (t SheetType) Valid() bool { return sheetTypes[t] }

// Station is one of the fixed observing sites. Empty means absent.
type Station string

const (
	StationMabMet    Station = "Mab-Met"
	StationDagoretti Station = "Dagoretti"
	StationJKIA      Station = "JKIA"
	StationWilson    Station = "Wilson"
)

// Stations lists all observing sites in their canonical order. The first
// entry doubles as the fallback for unresolved static sheet lookups.
var Stations = []Station{StationMabMet, StationDagoretti, StationJKIA, StationWilson}

func (s Station) Valid() bool {
	for _, known := range Stations {
		if s == known {
			return true
		}
	}
	return false
}

// Month is a 3-letter month tag. Empty means absent.
type Month string

var months = map[Month]bool{
	"JAN": true, "FEB": true, "MAR": true, "APR": true,
	"MAY": true, "JUN": true, "JUL": true, "AUG": true,
	"SEP": true, "OCT": true, "NOV": true, "DEC": true,
}

func (m Month) Valid() bool { return months[m] }

// Report is the single persisted entity: a weather observation, a contact
// submission, or a sheet reference, discriminated by Type.
type Report struct {
	ID      string     `json:"id"`
	Type    ReportType `json:"type"`
	Content string     `json:"content,omitempty"`

	// Contact submissions only.
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message,omitempty"`

	Status    Status    `json:"status"`
	SheetType SheetType `json:"sheetType,omitempty"`
	SheetID   string    `json:"sheetId,omitempty"`
	SheetURL  string    `json:"sheetUrl,omitempty"`
	Station   Station   `json:"station,omitempty"`
	Month     Month     `json:"month,omitempty"`

	// ObservationID is a non-owning back-reference to an observation entity
	// managed elsewhere; used only for lookup.
	ObservationID string `json:"observationId,omitempty"`

	// Provenance captured from the originating request.
	IPAddress string `json:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

const noSubjectPlaceholder = "No Subject"

// ComposeContent is the explicit pre-persistence step. For CONTACT reports it
// synthesizes Content from Subject and Message, overwriting any caller-supplied
// value. All other types pass through unchanged. It must run exactly once,
// after validation and before the first insert, never on updates.
func (r *Report) ComposeContent() {
	if r.Type != TypeContact {
		return
	}
	subject := r.Subject
	if subject == "" {
		subject = noSubjectPlaceholder
	}
	r.Content = "Contact Form: " + subject + "\n\n" + r.Message
}
