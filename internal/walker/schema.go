package walker

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/mark3labs/swagger2model/internal/model"
	"github.com/mark3labs/swagger2model/internal/naming"
	"github.com/mark3labs/swagger2model/internal/override"
)

// Walker builds a ServiceModel from a parsed OpenAPI document. Recursive
// schema walks register entries keyed by name and return the resolved type
// name, so nested content never mutates a caller's name binding.
type Walker struct {
	model *model.ServiceModel
	ov    *override.Override
}

// walkDefinitions registers every named component schema under its own name,
// in ascending name order.
func (w *Walker) walkDefinitions(doc *openapi3.T) error {
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil
	}
	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := w.walkSchema(name, doc.Components.Schemas[name]); err != nil {
			return err
		}
	}
	return nil
}

// walkSchema registers exactly one field or structure entry for the schema
// node, plus any entries its nested content needs, and returns the name the
// entry was registered under.
func (w *Walker) walkSchema(name string, ref *openapi3.SchemaRef) (string, error) {
	if ref == nil || ref.Value == nil {
		return "", unsupportedf(name, "missing schema")
	}
	s := ref.Value

	if ref.Ref != "" && !isObjectSchema(s) {
		// A definition that is a direct reference only works when the target
		// is an object: its members are inlined under this name.
		return "", unsupportedf(name, "direct reference %s to a non-object schema", ref.Ref)
	}

	switch {
	case len(s.AllOf) > 0:
		return w.walkAllOf(name, s)
	case len(s.OneOf) > 0 || len(s.AnyOf) > 0:
		return "", unsupportedf(name, "oneOf/anyOf is only supported inside a response body")
	}

	switch s.Type {
	case "boolean", "integer", "number", "string":
		f, err := w.scalarField(name, s)
		if err != nil {
			return "", err
		}
		return w.setField(name, f), nil
	case "array":
		return w.walkArray(name, s)
	case "object":
		if s.AdditionalProperties.Schema != nil {
			return w.walkMap(name, s)
		}
		return w.walkObject(name, s)
	case "":
		if len(s.Enum) > 0 {
			return w.setField(name, enumField(s)), nil
		}
		if s.AdditionalProperties.Schema != nil {
			return w.walkMap(name, s)
		}
		if len(s.Properties) > 0 {
			return w.walkObject(name, s)
		}
		return "", unsupportedf(name, "untyped schema")
	default:
		// file, null, and anything newer than the dialect we understand.
		return "", unsupportedf(name, "schema type %q", s.Type)
	}
}

// addField is the narrow entry point used for parameters and response
// headers: only primitive and enumeration shapes are allowed.
func (w *Walker) addField(name string, ref *openapi3.SchemaRef) (string, error) {
	if ref == nil || ref.Value == nil {
		return "", unsupportedf(name, "missing schema")
	}
	f, err := w.scalarField(name, ref.Value)
	if err != nil {
		return "", err
	}
	return w.setField(name, f), nil
}

func (w *Walker) setField(name string, f *model.Field) string {
	w.model.Fields[name] = f
	return name
}

func (w *Walker) scalarField(name string, s *openapi3.Schema) (*model.Field, error) {
	switch s.Type {
	case "boolean":
		return &model.Field{Kind: model.KindBoolean}, nil
	case "integer":
		f := &model.Field{Kind: model.KindInteger}
		if s.Format == "int64" {
			f.Kind = model.KindLong
		}
		numericRange(f, s)
		return f, nil
	case "number":
		f := &model.Field{Kind: model.KindDouble}
		numericRange(f, s)
		return f, nil
	case "string":
		return w.stringField(s), nil
	case "":
		if len(s.Enum) > 0 {
			return enumField(s), nil
		}
		return nil, unsupportedf(name, "untyped schema")
	default:
		return nil, unsupportedf(name, "composite schema type %q where a scalar is required", s.Type)
	}
}

func (w *Walker) stringField(s *openapi3.Schema) *model.Field {
	switch s.Format {
	case "date-time", "date":
		return &model.Field{Kind: model.KindTimestamp}
	case "binary", "byte":
		return &model.Field{Kind: model.KindData}
	}
	if len(s.Enum) > 0 {
		return enumField(s)
	}
	f := &model.Field{Kind: model.KindString}
	if values, ok := alternativeList(w.ov, s.Pattern); ok {
		f.Values = values
		return f
	}
	f.Pattern = s.Pattern
	if s.MinLength > 0 {
		min := s.MinLength
		f.MinLength = &min
	}
	f.MaxLength = s.MaxLength
	return f
}

// enumField builds the enumeration variant: a string field whose values come
// from schema metadata, with no pattern or length constraints.
func enumField(s *openapi3.Schema) *model.Field {
	f := &model.Field{Kind: model.KindString}
	for _, v := range s.Enum {
		f.Values = append(f.Values, fmt.Sprint(v))
	}
	return f
}

// alternativeList reinterprets a "^a|b|c$" pattern as enumerated values when
// the override enables it.
func alternativeList(ov *override.Override, pattern string) ([]string, bool) {
	if ov == nil || !ov.StringPatternsAreAlternativeList {
		return nil, false
	}
	inner, ok := strings.CutPrefix(pattern, "^")
	if !ok {
		return nil, false
	}
	inner, ok = strings.CutSuffix(inner, "$")
	if !ok || !strings.Contains(inner, "|") {
		return nil, false
	}
	return strings.Split(inner, "|"), true
}

func numericRange(f *model.Field, s *openapi3.Schema) {
	f.Min = s.Min
	f.Max = s.Max
	f.ExclusiveMin = s.ExclusiveMin
	f.ExclusiveMax = s.ExclusiveMax
}

func (w *Walker) walkObject(name string, s *openapi3.Schema) (string, error) {
	st := w.model.EnsureStructure(name)
	if st.Doc == "" {
		st.Doc = s.Description
	}
	required := make(map[string]bool, len(s.Required))
	for _, r := range s.Required {
		required[r] = true
	}

	keys := make([]string, 0, len(s.Properties))
	for prop := range s.Properties {
		keys = append(keys, prop)
	}
	sort.Strings(keys)

	for i, prop := range keys {
		pref := s.Properties[prop]
		var value, doc string
		if pref != nil && pref.Ref != "" {
			value = refName(pref.Ref)
		} else {
			v, err := w.walkSchema(name+naming.Capitalize(prop), pref)
			if err != nil {
				return "", err
			}
			value = v
			if pref.Value != nil {
				doc = pref.Value.Description
			}
		}
		st.Members[prop] = &model.Member{
			Name:     prop,
			Value:    value,
			Position: i,
			Required: required[prop],
			Doc:      doc,
		}
	}
	return name, nil
}

func (w *Walker) walkMap(name string, s *openapi3.Schema) (string, error) {
	ap := s.AdditionalProperties.Schema
	var value string
	if ap.Ref != "" {
		value = refName(ap.Ref)
	} else {
		v, err := w.walkSchema(name+"Value", ap)
		if err != nil {
			return "", err
		}
		value = v
	}
	f := &model.Field{Kind: model.KindMap, Key: "string", Value: value}
	if s.MinProps > 0 {
		min := s.MinProps
		f.MinItems = &min
	}
	f.MaxItems = s.MaxProps
	return w.setField(name, f), nil
}

func (w *Walker) walkArray(name string, s *openapi3.Schema) (string, error) {
	items := s.Items
	if items == nil || (items.Ref == "" && items.Value == nil) {
		return "", unsupportedf(name, "array without a single item schema")
	}
	var elem string
	if items.Ref != "" {
		elem = refName(items.Ref)
	} else {
		v, err := w.walkSchema(singularize(name), items)
		if err != nil {
			return "", err
		}
		elem = v
	}
	f := &model.Field{Kind: model.KindList, Element: elem}
	if s.MinItems > 0 {
		min := s.MinItems
		f.MinItems = &min
	}
	f.MaxItems = s.MaxItems
	return w.setField(name, f), nil
}

// walkAllOf merges each subschema's members into one structure. Later
// subschemas win on member-key collisions; positions are renumbered over the
// merged key set afterwards. Both behaviors are contractual for downstream
// consumers.
func (w *Walker) walkAllOf(name string, s *openapi3.Schema) (string, error) {
	acc := model.NewStructure()
	acc.Doc = s.Description
	for i, sub := range s.AllOf {
		child := fmt.Sprintf("%s%d", name, i+1)
		resolved, err := w.walkSchema(child, sub)
		if err != nil {
			return "", err
		}
		st, ok := w.model.Structures[resolved]
		if !ok {
			return "", unsupportedf(name, "allOf subschema %q is not an object or structure", resolved)
		}
		for k, m := range st.Members {
			cp := *m
			acc.Members[k] = &cp
		}
	}
	acc.Renumber()
	w.model.Structures[name] = acc
	return name, nil
}

// singularize derives an element name from its enclosing list name: a
// trailing "s" is stripped, otherwise one is appended. The heuristic is part
// of the naming contract.
func singularize(name string) string {
	if cut, ok := strings.CutSuffix(name, "s"); ok && cut != "" {
		return cut
	}
	return name + "s"
}

func refName(ref string) string {
	return path.Base(ref)
}

func isObjectSchema(s *openapi3.Schema) bool {
	if s == nil {
		return false
	}
	return s.Type == "object" || len(s.AllOf) > 0 || (s.Type == "" && len(s.Properties) > 0)
}
