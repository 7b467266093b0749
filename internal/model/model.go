package model

// Normalized service model produced from one OpenAPI/Swagger document and
// consumed by a code-emission backend. Entities reference each other by name
// only; every referenced name resolves to a Structures or Fields entry.

import (
	"encoding/json"
	"fmt"
	"sort"
)

// FieldKind tags the variant carried by a Field.
type FieldKind int

const (
	_ FieldKind = iota
	KindString
	KindInteger
	KindLong
	KindBoolean
	KindDouble
	KindTimestamp
	KindList
	KindMap
	KindData
)

var fieldKindNames = []string{
	KindString:    "String",
	KindInteger:   "Integer",
	KindLong:      "Long",
	KindBoolean:   "Boolean",
	KindDouble:    "Double",
	KindTimestamp: "Timestamp",
	KindList:      "List",
	KindMap:       "Map",
	KindData:      "Data",
}

func (k FieldKind) String() string {
	if k <= 0 || int(k) >= len(fieldKindNames) {
		return ""
	}
	return fieldKindNames[k]
}

func (k FieldKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *FieldKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for v, name := range fieldKindNames {
		if name == s {
			*k = FieldKind(v)
			return nil
		}
	}
	return fmt.Errorf("model: unknown field kind %q", s)
}

// Field describes a scalar or collection type. Which constraint fields are
// meaningful depends on Kind: Pattern/Values/MinLength/MaxLength for strings,
// Min/Max and the exclusivity flags for numerics, Element plus the item
// bounds for lists, Key/Value plus the item bounds for maps.
type Field struct {
	Kind         FieldKind `json:"kind"`
	Pattern      string    `json:"pattern,omitempty"`
	Values       []string  `json:"values,omitempty"`
	MinLength    *uint64   `json:"minLength,omitempty"`
	MaxLength    *uint64   `json:"maxLength,omitempty"`
	Min          *float64  `json:"min,omitempty"`
	Max          *float64  `json:"max,omitempty"`
	ExclusiveMin bool      `json:"exclusiveMin,omitempty"`
	ExclusiveMax bool      `json:"exclusiveMax,omitempty"`
	Element      string    `json:"element,omitempty"`
	Key          string    `json:"key,omitempty"`
	Value        string    `json:"value,omitempty"`
	MinItems     *uint64   `json:"minItems,omitempty"`
	MaxItems     *uint64   `json:"maxItems,omitempty"`
	Doc          string    `json:"doc,omitempty"`
}

// Member is one named slot inside a Structure. Value names the field or
// structure holding the member's type. WireName keeps the original wire
// spelling when it differs from the member key (response headers).
type Member struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Position int    `json:"position"`
	WireName string `json:"wireName,omitempty"`
	Required bool   `json:"required,omitempty"`
	Doc      string `json:"doc,omitempty"`
}

// Structure is a named aggregate of members. Positions of the N members are
// always exactly 0..N-1.
type Structure struct {
	Members map[string]*Member `json:"members"`
	Doc     string             `json:"doc,omitempty"`
}

func NewStructure() *Structure {
	return &Structure{Members: make(map[string]*Member)}
}

// OrderedMembers returns members sorted by position.
func (s *Structure) OrderedMembers() []*Member {
	out := make([]*Member, 0, len(s.Members))
	for _, m := range s.Members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// Renumber reassigns positions 0..N-1 over ascending member keys. Used after
// merges that may have introduced gaps or duplicates.
func (s *Structure) Renumber() {
	keys := make([]string, 0, len(s.Members))
	for k := range s.Members {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		s.Members[k].Position = i
	}
}

// OperationError pairs an error type name with the HTTP status code that
// produces it. Code 0 stands for the "default" response.
type OperationError struct {
	Type string `json:"type"`
	Code int    `json:"code"`
}

// OperationInput lists request field names by wire location.
type OperationInput struct {
	PathFields   []string `json:"pathFields,omitempty"`
	QueryFields  []string `json:"queryFields,omitempty"`
	BodyFields   []string `json:"bodyFields,omitempty"`
	HeaderFields []string `json:"headerFields,omitempty"`
	PathTemplate string   `json:"pathTemplate,omitempty"`
	// OnlyHasDefaultLocation is true when no field was bound to any location.
	OnlyHasDefaultLocation bool `json:"onlyHasDefaultLocation,omitempty"`
}

// OperationOutput records how a merged response structure splits back into
// body and header content.
type OperationOutput struct {
	BodyFields    []string `json:"bodyFields,omitempty"`
	HeaderFields  []string `json:"headerFields,omitempty"`
	BodyStructure string   `json:"bodyStructure,omitempty"`
}

// Operation describes one API action.
type Operation struct {
	Name   string           `json:"name"`
	Method string           `json:"method"`
	Path   string           `json:"path"`
	Input  string           `json:"input,omitempty"`
	Output string           `json:"output,omitempty"`
	Errors []OperationError `json:"errors,omitempty"`
	In     OperationInput   `json:"in"`
	Out    OperationOutput  `json:"out"`
	Doc    string           `json:"doc,omitempty"`
}

// ServiceModel is the aggregate produced for one document. It is mutated
// during the single walking pass and read-only afterwards.
type ServiceModel struct {
	Structures map[string]*Structure `json:"structures"`
	Fields     map[string]*Field     `json:"fields"`
	Operations map[string]*Operation `json:"operations"`
	Errors     map[string]bool       `json:"errors,omitempty"`
	// TypeNames maps raw names to disambiguated external names. Only names
	// involved in a collision appear; everything else falls back to the
	// default capitalize-first-letter transform.
	TypeNames map[string]string `json:"typeNames,omitempty"`
}

func New() *ServiceModel {
	return &ServiceModel{
		Structures: make(map[string]*Structure),
		Fields:     make(map[string]*Field),
		Operations: make(map[string]*Operation),
		Errors:     make(map[string]bool),
	}
}

// EnsureStructure returns the structure registered under name, creating an
// empty one when absent.
func (m *ServiceModel) EnsureStructure(name string) *Structure {
	if st, ok := m.Structures[name]; ok {
		return st
	}
	st := NewStructure()
	m.Structures[name] = st
	return st
}

// HasType reports whether name resolves to a registered structure or field.
func (m *ServiceModel) HasType(name string) bool {
	if _, ok := m.Structures[name]; ok {
		return true
	}
	_, ok := m.Fields[name]
	return ok
}

// StructureNames returns registered structure names in ascending order.
func (m *ServiceModel) StructureNames() []string {
	out := make([]string, 0, len(m.Structures))
	for name := range m.Structures {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FieldNames returns registered field names in ascending order.
func (m *ServiceModel) FieldNames() []string {
	out := make([]string, 0, len(m.Fields))
	for name := range m.Fields {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
