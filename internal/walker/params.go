package walker

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/mark3labs/swagger2model/internal/model"
	"github.com/mark3labs/swagger2model/internal/naming"
)

// classifyParameters sorts an operation's parameters into their wire-location
// groups. Each path/query/header parameter registers a scalar field named
// {operation}Request{Param}; the member's position is the parameter's raw
// index in the full list. The request body plays the classic body-parameter
// role: a reference names its structure directly, an inline schema is walked
// under {operation}RequestBody.
func (w *Walker) classifyParameters(op *model.Operation, params openapi3.Parameters, body *openapi3.RequestBodyRef) error {
	var pathMembers, queryMembers, headerMembers []*model.Member

	for i, pref := range params {
		if pref == nil || pref.Value == nil {
			continue
		}
		p := pref.Value
		switch p.In {
		case "path", "query", "header":
		default:
			return unsupportedf(op.Name, "parameter %q in unsupported location %q", p.Name, p.In)
		}

		fieldName := op.Name + "Request" + naming.Identifier(p.Name)
		if _, err := w.addField(fieldName, p.Schema); err != nil {
			return err
		}
		m := &model.Member{
			Name:     p.Name,
			Value:    fieldName,
			Position: i,
			Required: p.Required,
			Doc:      p.Description,
		}

		switch p.In {
		case "path":
			pathMembers = append(pathMembers, m)
		case "query":
			queryMembers = append(queryMembers, m)
		case "header":
			if w.ov.SkipRequestHeader(op.Name, p.Name) {
				continue
			}
			m.WireName = p.Name
			headerMembers = append(headerMembers, m)
		}
	}

	if body != nil && body.Value != nil {
		if schema := bodyContentSchema(body.Value.Content); schema != nil {
			var name string
			if schema.Ref != "" {
				name = refName(schema.Ref)
			} else {
				n, err := w.walkSchema(op.Name+"RequestBody", schema)
				if err != nil {
					return err
				}
				name = n
			}
			op.Input = name
			op.In.BodyFields = []string{"body"}
		}
	}

	op.In.PathFields = memberNames(pathMembers)
	op.In.QueryFields = memberNames(queryMembers)
	op.In.HeaderFields = memberNames(headerMembers)
	op.In.OnlyHasDefaultLocation = len(op.In.PathFields) == 0 &&
		len(op.In.QueryFields) == 0 &&
		len(op.In.HeaderFields) == 0 &&
		len(op.In.BodyFields) == 0
	return nil
}

// mergeParameters combines path-item and operation parameters into one
// order-preserving list: path-level entries first, operation-level entries
// replacing them in place on an (in, name) match.
func mergeParameters(base, extra openapi3.Parameters) openapi3.Parameters {
	out := make(openapi3.Parameters, 0, len(base)+len(extra))
	index := make(map[string]int, len(base))
	for _, lst := range []openapi3.Parameters{base, extra} {
		for _, pref := range lst {
			if pref == nil || pref.Value == nil {
				continue
			}
			key := pref.Value.In + ":" + pref.Value.Name
			if at, ok := index[key]; ok {
				out[at] = pref
				continue
			}
			index[key] = len(out)
			out = append(out, pref)
		}
	}
	return out
}

func memberNames(members []*model.Member) []string {
	if len(members) == 0 {
		return nil
	}
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, m.Name)
	}
	return out
}

// bodyContentSchema picks the schema of the JSON media entry, falling back to
// the first entry in mime order for non-JSON bodies.
func bodyContentSchema(content openapi3.Content) *openapi3.SchemaRef {
	if len(content) == 0 {
		return nil
	}
	mimes := make([]string, 0, len(content))
	for mime := range content {
		mimes = append(mimes, mime)
	}
	sort.Strings(mimes)
	pick := mimes[0]
	for _, mime := range mimes {
		if mime == "application/json" {
			pick = mime
			break
		}
	}
	mt := content[pick]
	if mt == nil {
		return nil
	}
	return mt.Schema
}
