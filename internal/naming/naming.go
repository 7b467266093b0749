package naming

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Capitalize upper-cases the first rune and leaves the rest untouched. This
// is the default external-name transform for names without collisions.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	if unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Entry is one raw name with its semantic label: the field kind name for
// fields ("String", "Integer", ...) or the empty string for structures.
type Entry struct {
	Raw   string
	Label string
}

// Normalize computes a collision-free external-name mapping over all raw
// structure and field names. The result contains entries only for names that
// case-collide with another name; consumers fall back to Capitalize for the
// rest.
//
// Colliding groups are disambiguated in two steps: a label suffix when the
// group spans more than one semantic label, then a 1-based positional suffix
// when several names share a label. Both steps iterate in sorted order so the
// mapping is reproducible. A group of plain string fields that normalizes to
// "String" collapses to the literal "String" instead, since every such name
// is the built-in string type.
func Normalize(entries []Entry) map[string]string {
	groups := make(map[string][]Entry)
	for _, e := range entries {
		key := Capitalize(e.Raw)
		groups[key] = append(groups[key], e)
	}

	out := make(map[string]string)
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		group := groups[key]
		if len(group) < 2 {
			continue
		}

		byLabel := make(map[string][]string)
		for _, e := range group {
			byLabel[e.Label] = append(byLabel[e.Label], e.Raw)
		}
		labels := make([]string, 0, len(byLabel))
		for l := range byLabel {
			labels = append(labels, l)
		}
		sort.Strings(labels)
		labelled := len(labels) > 1

		for _, label := range labels {
			raws := byLabel[label]
			sort.Strings(raws)

			if key == "String" && label == "String" && !labelled {
				for _, raw := range raws {
					out[raw] = "String"
				}
				continue
			}

			base := key
			if labelled {
				base += label
			}
			if len(raws) == 1 {
				out[raws[0]] = base
				continue
			}
			for i, raw := range raws {
				out[raw] = base + strconv.Itoa(i+1)
			}
		}
	}
	return out
}

// Identifier turns an arbitrary wire name into a PascalCase identifier
// fragment: separators drop out and the following rune is upper-cased.
func Identifier(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		switch r {
		case '-', '_', '.', ' ', '/':
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
