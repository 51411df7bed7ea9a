package models

import (
	"regexp"
	"strings"

	"metdesk/pkg/apperrors"
)

// Shapes carried over from the portal's form validation.
var (
	emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	urlPattern   = regexp.MustCompile(`https?://(www\.)?[-a-zA-Z0-9@:%._\+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_\+.~#?&//=]*)`)
)

// Validate normalizes a candidate report and enforces the conditional
// required-field rules for its type. It is a pure function of its input: no
// storage or network side effects. On success the returned report has trimmed
// strings, a lower-cased email, and an upper-cased type; on failure the error
// is a validation error naming the offending field.
func Validate(r Report) (Report, error) {
	r.normalize()

	if r.Type == "" {
		return Report{}, apperrors.Validation("type", "type is required")
	}
	if !r.Type.Valid() {
		return Report{}, apperrors.Validation("type", "unknown report type "+string(r.Type))
	}

	if r.Type == TypeContact {
		if r.Name == "" {
			return Report{}, apperrors.Validation("name", "name is required for contact messages")
		}
		if r.Email == "" {
			return Report{}, apperrors.Validation("email", "email is required for contact messages")
		}
		if r.Message == "" {
			return Report{}, apperrors.Validation("message", "message is required for contact messages")
		}
	} else if r.Content == "" {
		return Report{}, apperrors.Validation("content", "content is required")
	}

	if r.Email != "" && !emailPattern.MatchString(r.Email) {
		return Report{}, apperrors.Validation("email", "please fill a valid email address")
	}
	if r.SheetURL != "" && !urlPattern.MatchString(r.SheetURL) {
		return Report{}, apperrors.Validation("sheetUrl", "please provide a valid URL")
	}

	if r.Status == "" {
		r.Status = StatusNew
	}
	if !r.Status.Valid() {
		return Report{}, apperrors.Validation("status", "unknown status "+string(r.Status))
	}
	if r.SheetType != "" && !r.SheetType.Valid() {
		return Report{}, apperrors.Validation("sheetType", "unknown sheet type "+string(r.SheetType))
	}
	if r.Station != "" && !r.Station.Valid() {
		return Report{}, apperrors.Validation("station", "unknown station "+string(r.Station))
	}
	if r.Month != "" && !r.Month.Valid() {
		return Report{}, apperrors.Validation("month", "unknown month "+string(r.Month))
	}

	return r, nil
}

func (r *Report) normalize() {
	r.Type = ReportType(strings.ToUpper(strings.TrimSpace(string(r.Type))))
	r.Content = strings.TrimSpace(r.Content)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
	r.SheetID = strings.TrimSpace(r.SheetID)
	r.Station = Station(strings.TrimSpace(string(r.Station)))
	r.SheetURL = strings.TrimSpace(r.SheetURL)
	r.Month = Month(strings.ToUpper(strings.TrimSpace(string(r.Month))))
	r.ObservationID = strings.TrimSpace(r.ObservationID)
	r.IPAddress = strings.TrimSpace(r.IPAddress)
	r.UserAgent = strings.TrimSpace(r.UserAgent)
}
