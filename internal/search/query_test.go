package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery_Defaults(t *testing.T) {
	desc, err := ParseQuery(RawQuery{Term: "moon"})
	require.NoError(t, err)

	assert.Equal(t, "moon", desc.Term)
	assert.Equal(t, int64(1), desc.Page)
	assert.Equal(t, int64(10), desc.PageSize)
	assert.Equal(t, int64(0), desc.Skip())
}

func TestParseQuery_ExplicitPaging(t *testing.T) {
	desc, err := ParseQuery(RawQuery{Term: "moon", Page: "3", PageSize: "5"})
	require.NoError(t, err)

	assert.Equal(t, int64(3), desc.Page)
	assert.Equal(t, int64(5), desc.PageSize)
	assert.Equal(t, int64(10), desc.Skip())
}

func TestParseQuery_InvalidPagination(t *testing.T) {
	tests := []struct {
		name string
		raw  RawQuery
	}{
		{"zero page", RawQuery{Term: "moon", Page: "0"}},
		{"negative page", RawQuery{Term: "moon", Page: "-1"}},
		{"zero limit", RawQuery{Term: "moon", PageSize: "0"}},
		{"non-numeric page", RawQuery{Term: "moon", Page: "abc"}},
		{"non-numeric limit", RawQuery{Term: "moon", PageSize: "ten"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuery(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidPagination)
		})
	}
}

func TestParseQuery_EmptyQuery(t *testing.T) {
	_, err := ParseQuery(RawQuery{})
	assert.ErrorIs(t, err, ErrEmptyQuery)

	// Whitespace-only term is still empty
	_, err = ParseQuery(RawQuery{Term: "   "})
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestParseQuery_FacetOnly(t *testing.T) {
	desc, err := ParseQuery(RawQuery{Genre: "jazz"})
	require.NoError(t, err)

	assert.Empty(t, desc.Term)
	assert.Equal(t, "jazz", desc.Genre)
}

func TestParseQuery_TrimsInput(t *testing.T) {
	desc, err := ParseQuery(RawQuery{Term: " moon ", Tag: " chill ", Language: " English "})
	require.NoError(t, err)

	assert.Equal(t, "moon", desc.Term)
	assert.Equal(t, "chill", desc.Tag)
	assert.Equal(t, "English", desc.Language)
}
