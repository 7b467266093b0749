package walker

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/mark3labs/swagger2model/internal/model"
	"github.com/mark3labs/swagger2model/internal/naming"
	"github.com/mark3labs/swagger2model/internal/override"
)

// Build converts a parsed OpenAPI document into a normalized ServiceModel:
// named definitions first, then every path operation, then the whole-model
// type-name collision pass. The walk is single-threaded and deterministic;
// building the same document twice yields deeply equal models.
func Build(ctx context.Context, doc *openapi3.T, ov *override.Override) (*model.ServiceModel, error) {
	_ = ctx
	if doc == nil {
		return nil, fmt.Errorf("walker: nil document")
	}
	if ov == nil {
		ov = &override.Override{}
	}
	w := &Walker{model: model.New(), ov: ov}

	if err := w.walkDefinitions(doc); err != nil {
		return nil, err
	}
	if err := w.walkPaths(doc); err != nil {
		return nil, err
	}
	w.model.TypeNames = naming.Normalize(w.typeEntries())
	return w.model, nil
}

func (w *Walker) walkPaths(doc *openapi3.T) error {
	if doc.Paths == nil {
		return nil
	}
	paths := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		item := doc.Paths[p]
		if item == nil {
			continue
		}
		ops := []struct {
			method string
			op     *openapi3.Operation
		}{
			{"get", item.Get},
			{"post", item.Post},
			{"put", item.Put},
			{"delete", item.Delete},
			{"patch", item.Patch},
			{"head", item.Head},
			{"options", item.Options},
			{"trace", item.Trace},
		}
		for _, pair := range ops {
			if pair.op == nil {
				continue
			}
			name := operationName(pair.op, pair.method, p)
			if w.ov.SkipOperation(name, pair.method) {
				continue
			}
			op := &model.Operation{Name: name, Method: pair.method, Path: p}
			op.In.PathTemplate = p
			op.Doc = firstNonEmpty(pair.op.Summary, pair.op.Description)

			params := mergeParameters(item.Parameters, pair.op.Parameters)
			if err := w.classifyParameters(op, params, pair.op.RequestBody); err != nil {
				return err
			}
			if pair.op.Responses != nil {
				if err := w.mergeResponses(op, pair.op.Responses); err != nil {
					return err
				}
			}
			w.model.Operations[name] = op
		}
	}
	return nil
}

// typeEntries collects the full structure+field namespace for the collision
// pass: structures carry an empty label, fields their kind name.
func (w *Walker) typeEntries() []naming.Entry {
	entries := make([]naming.Entry, 0, len(w.model.Structures)+len(w.model.Fields))
	for _, name := range w.model.StructureNames() {
		entries = append(entries, naming.Entry{Raw: name})
	}
	for _, name := range w.model.FieldNames() {
		entries = append(entries, naming.Entry{Raw: name, Label: w.model.Fields[name].Kind.String()})
	}
	return entries
}

// operationName prefers the document's operationId and otherwise derives a
// name from the method and path: "get /widgets/{id}" -> "getWidgetsId".
func operationName(op *openapi3.Operation, method, pathTemplate string) string {
	if id := strings.TrimSpace(op.OperationID); id != "" {
		return id
	}
	cleaned := strings.NewReplacer("{", "", "}", "").Replace(pathTemplate)
	return method + naming.Identifier(cleaned)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
