package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldKindJSONRoundTrip(t *testing.T) {
	t.Parallel()

	kinds := []FieldKind{
		KindString, KindInteger, KindLong, KindBoolean, KindDouble,
		KindTimestamp, KindList, KindMap, KindData,
	}
	for _, k := range kinds {
		data, err := json.Marshal(k)
		require.NoError(t, err)

		var got FieldKind
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, k, got, "round trip for %s", k)
	}

	var k FieldKind
	err := json.Unmarshal([]byte(`"Float"`), &k)
	assert.Error(t, err, "unknown kind must be rejected")
}

func TestStructureRenumber(t *testing.T) {
	t.Parallel()

	st := NewStructure()
	st.Members["b"] = &Member{Name: "b", Value: "String", Position: 7}
	st.Members["a"] = &Member{Name: "a", Value: "String", Position: 7}
	st.Members["c"] = &Member{Name: "c", Value: "String", Position: 2}
	st.Renumber()

	assert.Equal(t, 0, st.Members["a"].Position)
	assert.Equal(t, 1, st.Members["b"].Position)
	assert.Equal(t, 2, st.Members["c"].Position)

	ordered := st.OrderedMembers()
	require.Len(t, ordered, 3)
	for i, m := range ordered {
		assert.Equal(t, i, m.Position)
	}
}

func TestServiceModelLookups(t *testing.T) {
	t.Parallel()

	m := New()
	m.EnsureStructure("Widget")
	m.Fields["limit"] = &Field{Kind: KindInteger}

	assert.True(t, m.HasType("Widget"))
	assert.True(t, m.HasType("limit"))
	assert.False(t, m.HasType("Gadget"))

	same := m.EnsureStructure("Widget")
	assert.Same(t, m.Structures["Widget"], same)

	m.EnsureStructure("Alpha")
	assert.Equal(t, []string{"Alpha", "Widget"}, m.StructureNames())
	assert.Equal(t, []string{"limit"}, m.FieldNames())
}
