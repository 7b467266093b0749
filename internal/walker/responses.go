package walker

import (
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/mark3labs/swagger2model/internal/model"
	"github.com/mark3labs/swagger2model/internal/naming"
)

// mergeResponses walks an operation's response map in ascending status-code
// order. Each response body becomes the operation output (2xx) or an error
// type; surviving response headers force a merged {operation}{code}Response
// structure combining body members and header members.
func (w *Walker) mergeResponses(op *model.Operation, responses openapi3.Responses) error {
	codes := make([]string, 0, len(responses))
	for code := range responses {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, codeKey := range codes {
		rref := responses[codeKey]
		if rref == nil || rref.Value == nil {
			continue
		}
		r := rref.Value
		code := statusCode(codeKey)

		headerMembers, err := w.responseHeaderMembers(op.Name, codeKey, r.Headers)
		if err != nil {
			return err
		}

		var bodyName string
		if schema := bodyContentSchema(r.Content); schema != nil {
			if v := schema.Value; schema.Ref == "" && v != nil && len(v.OneOf) > 0 {
				// A oneOf body fans out into one type per alternative, all
				// attached to the same status code.
				for i, alt := range v.OneOf {
					n, err := w.walkResponseBody(op.Name, codeKey, alt, i+1)
					if err != nil {
						return err
					}
					w.recordResponseType(op, code, n)
					bodyName = n
				}
			} else {
				n, err := w.walkResponseBody(op.Name, codeKey, schema, 0)
				if err != nil {
					return err
				}
				w.recordResponseType(op, code, n)
				bodyName = n
			}
		}

		if len(headerMembers) > 0 {
			if err := w.mergeResponseHeaders(op, codeKey, bodyName, headerMembers); err != nil {
				return err
			}
		}
	}
	return nil
}

// responseHeaderMembers filters the response's headers through the override
// configuration and registers a field {operation}{Header}Header for each
// survivor. Positions enumerate the filtered set in ascending header-name
// order; header members are never required.
func (w *Walker) responseHeaderMembers(opName, codeKey string, headers openapi3.Headers) (map[string]*model.Member, error) {
	if len(headers) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(headers))
	for h := range headers {
		if w.ov.SkipResponseHeader(opName, codeKey, h) {
			continue
		}
		names = append(names, h)
	}
	sort.Strings(names)

	members := make(map[string]*model.Member, len(names))
	for i, h := range names {
		href := headers[h]
		if href == nil || href.Value == nil {
			continue
		}
		fieldName := opName + naming.Identifier(h) + "Header"
		if _, err := w.addField(fieldName, href.Value.Schema); err != nil {
			return nil, err
		}
		members[h] = &model.Member{
			Name:     h,
			Value:    fieldName,
			Position: i,
			WireName: h,
		}
	}
	return members, nil
}

func (w *Walker) walkResponseBody(opName, codeKey string, ref *openapi3.SchemaRef, alternative int) (string, error) {
	if ref.Ref != "" {
		return refName(ref.Ref), nil
	}
	name := opName + codeKey + "Response"
	if alternative > 0 {
		name += strconv.Itoa(alternative)
	}
	return w.walkSchema(name, ref)
}

func (w *Walker) recordResponseType(op *model.Operation, code int, name string) {
	if code >= 200 && code < 300 {
		op.Output = name
		return
	}
	op.Errors = append(op.Errors, model.OperationError{Type: name, Code: code})
	w.model.Errors[name] = true
}

// mergeResponseHeaders builds the combined body+header output structure. The
// union keeps body members and overlays header members (header wins on a key
// collision), then renumbers positions over ascending member keys. The
// operation's output description records the pre-merge body and header key
// sets so the emitter can split the structure back apart.
func (w *Walker) mergeResponseHeaders(op *model.Operation, codeKey, bodyName string, headers map[string]*model.Member) error {
	merged := model.NewStructure()
	var bodyKeys []string
	bodyStructure := ""

	if bodyName != "" {
		if st, ok := w.model.Structures[bodyName]; ok {
			bodyStructure = bodyName
			for k, m := range st.Members {
				cp := *m
				merged.Members[k] = &cp
				bodyKeys = append(bodyKeys, k)
			}
		} else if f, ok := w.model.Fields[bodyName]; ok {
			// Scalar or list body: it becomes a single member named after
			// the field. The merged structure claims the {op}{code}Response
			// name below, so a field walked under that exact name moves to
			// {op}{code}ResponseBody first to keep raw names unambiguous.
			if bodyName == op.Name+codeKey+"Response" {
				renamed := bodyName + "Body"
				delete(w.model.Fields, bodyName)
				w.model.Fields[renamed] = f
				bodyName = renamed
			}
			merged.Members[bodyName] = &model.Member{Name: bodyName, Value: bodyName}
			bodyKeys = append(bodyKeys, bodyName)
		} else {
			return missingRef(op.Name, bodyName)
		}
	}

	headerKeys := make([]string, 0, len(headers))
	for h, m := range headers {
		cp := *m
		merged.Members[h] = &cp
		headerKeys = append(headerKeys, h)
	}
	merged.Renumber()

	name := op.Name + codeKey + "Response"
	w.model.Structures[name] = merged
	op.Output = name

	sort.Strings(bodyKeys)
	sort.Strings(headerKeys)
	op.Out.BodyFields = bodyKeys
	op.Out.HeaderFields = headerKeys
	op.Out.BodyStructure = bodyStructure
	return nil
}

// statusCode maps a response-map key to its numeric code. "default" and
// range keys ("4XX") have no single code and map to 0, which the error list
// treats as non-success.
func statusCode(key string) int {
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0
	}
	return n
}
