// Package station holds the fixed directory of observing sites and their
// login credentials. The directory is built once at startup from
// configuration and read-only afterwards; secrets are stored as bcrypt
// hashes, never as plaintext.
package station

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/crypto/bcrypt"

	"metdesk/internal/platform/config"
	"metdesk/pkg/apperrors"
)

type Directory struct {
	hashes map[string]string
	names  []string
}

func NewDirectory(credentials []config.StationCredential) *Directory {
	d := &Directory{hashes: make(map[string]string, len(credentials))}
	for _, cred := range credentials {
		d.hashes[cred.Name] = cred.SecretHash
		d.names = append(d.names, cred.Name)
	}
	sort.Strings(d.names)
	return d
}

// Authenticate verifies a station's secret against its stored hash. Stations
// with no configured hash are refused outright.
func (d *Directory) Authenticate(name, secret string) error {
	hash, known := d.hashes[name]
	if !known {
		return apperrors.New(apperrors.CodeUnauthorized, "unknown station")
	}
	if hash == "" {
		return apperrors.New(apperrors.CodeUnauthorized, "station login disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		return apperrors.New(apperrors.CodeUnauthorized, "invalid station credentials")
	}
	return nil
}

// HashSecret creates the bcrypt hash stored in configuration for a station
// secret.
func HashSecret(secret string) (string, error) {
	if secret == "" {
		return "", apperrors.Validation("secret", "secret cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperrors.Validation("secret", "secret is too long")
		}
		return "", fmt.Errorf("could not hash secret: %w", err)
	}
	return string(hashed), nil
}

// Names lists known stations in sorted order.
func (d *Directory) Names() []string {
	return append([]string(nil), d.names...)
}
