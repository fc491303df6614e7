package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeState_KnownAbbreviations(t *testing.T) {
	tests := []struct {
		abbr     string
		expected string
	}{
		{"TX", "Texas"},
		{"CA", "California"},
		{"NY", "New York"},
		{"NH", "New Hampshire"},
		{"AL", "Alabama"},
		{"WY", "Wyoming"},
	}

	for _, tt := range tests {
		t.Run(tt.abbr, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeState(tt.abbr))
		})
	}
}

func TestNormalizeState_TableIsComplete(t *testing.T) {
	assert.Len(t, stateNames, 50)
	for abbr, full := range stateNames {
		assert.Len(t, abbr, 2)
		assert.NotEmpty(t, full)
		assert.Equal(t, full, NormalizeState(abbr))
	}
}

func TestIsStateAbbreviation(t *testing.T) {
	assert.True(t, IsStateAbbreviation("TX"))
	assert.True(t, IsStateAbbreviation("WY"))
	assert.False(t, IsStateAbbreviation("tx"))
	assert.False(t, IsStateAbbreviation("ZZ"))
	assert.False(t, IsStateAbbreviation("Texas"))
	assert.False(t, IsStateAbbreviation(""))
}

func TestNormalizeState_FallbackTitleCase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already full name", "Texas", "Texas"},
		{"lowercase full name", "texas", "Texas"},
		{"two words", "new york", "New York"},
		{"uppercase full name", "TEXAS", "Texas"},
		{"lowercase abbreviation not matched", "tx", "Tx"},
		{"unknown token", "ZZ", "Zz"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeState(tt.input))
		})
	}
}
