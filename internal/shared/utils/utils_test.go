package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlepin/internal/shared/errors"
)

type overrideInput struct {
	Name  string `json:"name" validate:"required,max=255"`
	Value string `json:"value" validate:"required,max=255"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(overrideInput{Name: "enabled", Value: "1"}))

	err := ValidateStruct(overrideInput{Name: "", Value: string(make([]byte, 256))})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	appErr := errors.GetAppError(err)
	assert.Contains(t, appErr.Details, "name is required")
	assert.Contains(t, appErr.Details, "value must be at most 255 characters long")
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Corp", "Acme Corp"},
		{"  <b>Acme</b> Corp ", "Acme Corp"},
		{"<script>alert(1)</script>host-1", "host-1"},
		{"R&D lab", "R&D lab"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.in))
		})
	}
}
