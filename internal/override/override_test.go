package override

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.yaml")
	content := `ignoreOperations:
- listWidgets.get
ignoreRequestHeaders:
- "*.X-Api-Key"
ignoreResponseHeaders:
- "*.*.X-Trace-Id"
modelStringPatternsAreAlternativeList: true
namingOverrides:
  widget: Gadget
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	o, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"listWidgets.get"}, o.IgnoreOperations)
	assert.True(t, o.StringPatternsAreAlternativeList)
	assert.Equal(t, "Gadget", o.NamingOverrides["widget"])
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSkipOperation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		patterns []string
		op, verb string
		want     bool
	}{
		{"exact", []string{"listWidgets.get"}, "listWidgets", "get", true},
		{"wildcard verb", []string{"listWidgets.*"}, "listWidgets", "delete", true},
		{"wildcard op", []string{"*.delete"}, "anything", "delete", true},
		{"wildcard both", []string{"*.*"}, "anything", "get", true},
		{"no match", []string{"listWidgets.get"}, "listWidgets", "post", false},
		{"whitespace tolerated", []string{"  listWidgets.get  "}, "listWidgets", "get", true},
		{"empty", nil, "listWidgets", "get", false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			o := &Override{IgnoreOperations: tc.patterns}
			assert.Equal(t, tc.want, o.SkipOperation(tc.op, tc.verb))
		})
	}
}

func TestSkipRequestHeader(t *testing.T) {
	t.Parallel()

	o := &Override{IgnoreRequestHeaders: []string{
		"listWidgets.X-Api-Key",
		"*.X-Request-Id",
		"createWidget.*",
	}}

	assert.True(t, o.SkipRequestHeader("listWidgets", "X-Api-Key"))
	assert.True(t, o.SkipRequestHeader("deleteWidget", "X-Request-Id"))
	assert.True(t, o.SkipRequestHeader("createWidget", "Anything"))
	assert.False(t, o.SkipRequestHeader("deleteWidget", "X-Api-Key"))
}

func TestSkipResponseHeader(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name             string
		patterns         []string
		op, code, header string
		want             bool
	}{
		{"exact", []string{"listWidgets.200.X-Next-Token"}, "listWidgets", "200", "X-Next-Token", true},
		{"any any any", []string{"*.*.*"}, "op", "200", "H", true},
		{"any any header", []string{"*.*.X-Trace-Id"}, "op", "500", "X-Trace-Id", true},
		{"any code any", []string{"*.500.*"}, "op", "500", "H", true},
		{"op any header", []string{"listWidgets.*.X-Next-Token"}, "listWidgets", "404", "X-Next-Token", true},
		{"op code any", []string{"listWidgets.200.*"}, "listWidgets", "200", "H", true},
		// "*.code.header" is not part of the consulted combinations.
		{"any code header never matches", []string{"*.200.X-Next-Token"}, "listWidgets", "200", "X-Next-Token", false},
		{"different code", []string{"listWidgets.200.X-Next-Token"}, "listWidgets", "404", "X-Next-Token", false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			o := &Override{IgnoreResponseHeaders: tc.patterns}
			assert.Equal(t, tc.want, o.SkipResponseHeader(tc.op, tc.code, tc.header))
		})
	}
}

func TestSkipOnNilReceiver(t *testing.T) {
	t.Parallel()

	var o *Override
	assert.False(t, o.SkipOperation("op", "get"))
	assert.False(t, o.SkipRequestHeader("op", "H"))
	assert.False(t, o.SkipResponseHeader("op", "200", "H"))
}
