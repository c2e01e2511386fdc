package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrEmptyCorpus", ErrEmptyCorpus},
		{"ErrIndexNotFound", ErrIndexNotFound},
		{"ErrIndexCorrupt", ErrIndexCorrupt},
		{"ErrMissingCredential", ErrMissingCredential},
		{"ErrRemoteCall", ErrRemoteCall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Distinct tests that no two sentinels match each other
func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrUnsupportedType, ErrEmptyCorpus,
		ErrIndexNotFound, ErrIndexCorrupt, ErrMissingCredential, ErrRemoteCall,
	}
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

// TestErrIndexNotFound tests ErrIndexNotFound wrapping
func TestErrIndexNotFound(t *testing.T) {
	assert.Equal(t, "index not found", ErrIndexNotFound.Error())

	wrapped := fmt.Errorf("load /tmp/idx: %w", ErrIndexNotFound)
	assert.True(t, errors.Is(wrapped, ErrIndexNotFound))
	assert.False(t, errors.Is(wrapped, ErrIndexCorrupt))
}

// TestErrRemoteCall tests ErrRemoteCall wrapping
func TestErrRemoteCall(t *testing.T) {
	wrapped := fmt.Errorf("openai: %w: status 503", ErrRemoteCall)
	assert.True(t, errors.Is(wrapped, ErrRemoteCall))
	assert.Contains(t, wrapped.Error(), "remote call failed")
}
