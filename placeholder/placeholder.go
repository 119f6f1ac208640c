// Package placeholder parses and fills {{name}} markers in command templates.
package placeholder

import (
	"regexp"
	"strings"
)

// markerRegex matches "{{", one or more runes other than "}", then "}}".
// "{{}}" and an unclosed "{{" never match and stay literal text.
var markerRegex = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// ExtractVariables returns the distinct trimmed marker names of template in
// order of first appearance. Names are case-sensitive; surrounding
// whitespace is ignored, so "{{ Path }}" and "{{Path}}" both yield "Path".
func ExtractVariables(template string) []string {
	names := []string{}
	seen := make(map[string]bool)
	for _, m := range markerRegex.FindAllStringSubmatch(template, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// ReplaceVariables substitutes each marker whose trimmed name has a
// non-empty binding. Markers without one are kept exactly as written.
// Substituted values are not scanned again.
func ReplaceVariables(template string, bindings map[string]string) string {
	matches := markerRegex.FindAllStringSubmatchIndex(template, -1)
	if len(matches) == 0 {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		name := strings.TrimSpace(template[m[2]:m[3]])

		b.WriteString(template[last:start])
		if value := bindings[name]; name != "" && value != "" {
			b.WriteString(value)
		} else {
			b.WriteString(template[start:end])
		}
		last = end
	}
	b.WriteString(template[last:])
	return b.String()
}

// Marker renders name in marker syntax.
func Marker(name string) string {
	return "{{" + name + "}}"
}
