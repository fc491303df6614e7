package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSiteCSV(t *testing.T) {
	data := "name,city,state\nHQ-DC,Austin,TX\nBR1-BR,Austin,TX\n"

	rows, err := ParseSiteCSV(data)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, SiteRow{Name: "HQ-DC", City: "Austin", State: "TX"}, rows[0])
	assert.Equal(t, SiteRow{Name: "BR1-BR", City: "Austin", State: "TX"}, rows[1])
}

func TestParseSiteCSV_ExtraColumnsIgnored(t *testing.T) {
	data := "site_id,name,city,state,notes\n42,HQ-DC,Austin,TX,primary\n"

	rows, err := ParseSiteCSV(data)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, SiteRow{Name: "HQ-DC", City: "Austin", State: "TX"}, rows[0])
}

func TestParseSiteCSV_PreservesFileOrder(t *testing.T) {
	data := "name,city,state\nC-BR,Denver,CO\nA-DC,Austin,TX\nB-BR,Boston,MA\n"

	rows, err := ParseSiteCSV(data)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "C-BR", rows[0].Name)
	assert.Equal(t, "A-DC", rows[1].Name)
	assert.Equal(t, "B-BR", rows[2].Name)
}

func TestParseSiteCSV_TrimsWhitespace(t *testing.T) {
	data := "name, city, state\nHQ-DC, Austin , TX \n"

	rows, err := ParseSiteCSV(data)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, SiteRow{Name: "HQ-DC", City: "Austin", State: "TX"}, rows[0])
}

func TestParseSiteCSV_MissingRequiredColumn(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no state", "name,city"},
		{"no city", "name,state"},
		{"no name", "city,state"},
		{"case sensitive headers", "Name,City,State"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSiteCSV(tt.header + "\nHQ-DC,Austin,TX")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "required column")
		})
	}
}

func TestParseSiteCSV_HeaderOnly(t *testing.T) {
	rows, err := ParseSiteCSV("name,city,state\n")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseSiteCSV_Empty(t *testing.T) {
	_, err := ParseSiteCSV("")
	require.Error(t, err)
}

func TestParseSiteCSV_RaggedRow(t *testing.T) {
	_, err := ParseSiteCSV("name,city,state\nHQ-DC,Austin\n")
	require.Error(t, err)
}
