package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapitalize(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"", ""},
		{"widget", "Widget"},
		{"Widget", "Widget"},
		{"x", "X"},
		{"éclair", "Éclair"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Capitalize(tc.in), "Capitalize(%q)", tc.in)
	}
}

func TestIdentifier(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"X-Next-Token", "XNextToken"},
		{"content_type", "ContentType"},
		{"widgets/{id}", "Widgets{id}"},
		{"limit", "Limit"},
		{"a.b c", "ABC"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Identifier(tc.in), "Identifier(%q)", tc.in)
	}
}

func TestNormalizeNoCollision(t *testing.T) {
	t.Parallel()

	got := Normalize([]Entry{
		{Raw: "widget", Label: ""},
		{Raw: "token", Label: "String"},
	})
	assert.Empty(t, got, "non-colliding names fall back to Capitalize")
}

func TestNormalizeCaseCollision(t *testing.T) {
	t.Parallel()

	// Same label, two case variants: positional suffixes in sorted raw order.
	got := Normalize([]Entry{
		{Raw: "widget", Label: ""},
		{Raw: "Widget", Label: ""},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "Widget1", got["Widget"])
	assert.Equal(t, "Widget2", got["widget"])
}

func TestNormalizeLabelCollision(t *testing.T) {
	t.Parallel()

	// A structure and a field sharing a capitalized name split by label.
	got := Normalize([]Entry{
		{Raw: "status", Label: "String"},
		{Raw: "Status", Label: ""},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "Status", got["Status"])
	assert.Equal(t, "StatusString", got["status"])
}

func TestNormalizeLabelAndPositionalCollision(t *testing.T) {
	t.Parallel()

	got := Normalize([]Entry{
		{Raw: "id", Label: "String"},
		{Raw: "Id", Label: "String"},
		{Raw: "iD", Label: "Integer"},
	})
	require.Len(t, got, 3)
	assert.Equal(t, "IdInteger", got["iD"])
	assert.Equal(t, "IdString1", got["Id"])
	assert.Equal(t, "IdString2", got["id"])
}

func TestNormalizeStringCollapse(t *testing.T) {
	t.Parallel()

	// Plain string fields whose names normalize to "String" all collapse to
	// the literal built-in name instead of String1/String2.
	got := Normalize([]Entry{
		{Raw: "string", Label: "String"},
		{Raw: "String", Label: "String"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "String", got["string"])
	assert.Equal(t, "String", got["String"])
}

func TestNormalizeStringCollapseNotAppliedAcrossLabels(t *testing.T) {
	t.Parallel()

	// Once the group spans labels the collapse no longer applies.
	got := Normalize([]Entry{
		{Raw: "string", Label: "String"},
		{Raw: "String", Label: ""},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "String", got["String"])
	assert.Equal(t, "StringString", got["string"])
}

func TestNormalizeDeterministic(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Raw: "id", Label: "String"},
		{Raw: "Id", Label: "String"},
		{Raw: "widget", Label: ""},
		{Raw: "Widget", Label: ""},
	}
	first := Normalize(entries)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Normalize(entries))
	}
}
