package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	assert.Equal(t, "boom", New(CodeInternal, "boom").Error())
	assert.Equal(t, "email: invalid", Validation("email", "invalid").Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeUpstream, "drive call failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, CodeUpstream))
}

func TestIsSeesThroughWrapping(t *testing.T) {
	inner := New(CodeConflict, "duplicate")
	outer := fmt.Errorf("saving report: %w", inner)

	assert.True(t, Is(outer, CodeConflict))
	assert.False(t, Is(outer, CodeNotFound))
	assert.False(t, Is(errors.New("plain"), CodeConflict))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeNotFound, GetCode(New(CodeNotFound, "missing")))
	assert.Equal(t, CodeInternal, GetCode(errors.New("plain")))
}

func TestGetField(t *testing.T) {
	assert.Equal(t, "month", GetField(Validation("month", "unknown")))
	assert.Empty(t, GetField(New(CodeInternal, "boom")))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:   http.StatusBadRequest,
		CodeBadRequest:   http.StatusBadRequest,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeUpstream:     http.StatusBadGateway,
		CodeUnavailable:  http.StatusServiceUnavailable,
		CodeInternal:     http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), string(code))
	}
}
