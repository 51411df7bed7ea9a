// Package auth issues station access tokens against the station directory.
package auth

import (
	"metdesk/internal/jwttoken"
	"metdesk/internal/station"
)

type TokenResponse struct {
	Token     string `json:"token"`
	Station   string `json:"station"`
	ExpiresIn int64  `json:"expiresIn"`
}

type Service struct {
	directory *station.Directory
	tokens    *jwttoken.Service
}

func NewService(directory *station.Directory, tokens *jwttoken.Service) *Service {
	return &Service{directory: directory, tokens: tokens}
}

// Login verifies the shared secret and returns a signed, time-limited token
// asserting station identity.
func (s *Service) Login(stationName, secret string) (*TokenResponse, error) {
	if err := s.directory.Authenticate(stationName, secret); err != nil {
		return nil, err
	}
	token, err := s.tokens.GenerateStationToken(stationName)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		Token:     token,
		Station:   stationName,
		ExpiresIn: int64(s.tokens.TokenTTL().Seconds()),
	}, nil
}
