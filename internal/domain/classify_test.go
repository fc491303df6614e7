package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySite(t *testing.T) {
	tests := []struct {
		name     string
		site     string
		expected string
	}{
		{"data center suffix", "HQ-DC", TypeDataCenter},
		{"branch suffix", "BR1-BR", TypeBranch},
		{"suffix only", "-DC", TypeDataCenter},
		{"nested dashes", "US-EAST-1-DC", TypeDataCenter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ClassifySite(tt.site)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestClassifySite_RejectsUnknownSuffix(t *testing.T) {
	tests := []struct {
		name string
		site string
	}{
		{"no suffix", "SITE1"},
		{"lowercase suffix", "hq-dc"},
		{"suffix not at end", "HQ-DC-OLD"},
		{"empty name", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ClassifySite(tt.site)
			require.Error(t, err)

			var classErr *ClassificationError
			require.True(t, errors.As(err, &classErr))
			assert.Equal(t, tt.site, classErr.Name)
			assert.Contains(t, err.Error(), "-DC or -BR")
		})
	}
}
