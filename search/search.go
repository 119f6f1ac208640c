// Package search filters the command list for the search box and category
// selector, and suggests categories while editing.
package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"snipbox/model"
)

// All is the category selector value that matches every command.
const All = "All"

type Query struct {
	Text     string
	Category string
}

// Matches reports whether cmd passes both the category and the text filter.
// Text matching is a case-insensitive substring test against the title,
// description and each tag.
func (q Query) Matches(cmd model.Command) bool {
	if q.Category != "" && q.Category != All && q.Category != cmd.Category {
		return false
	}

	text := strings.ToLower(q.Text)
	if text == "" {
		return true
	}
	if strings.Contains(strings.ToLower(cmd.Title), text) ||
		strings.Contains(strings.ToLower(cmd.Description), text) {
		return true
	}
	for _, tag := range cmd.Tags {
		if strings.Contains(strings.ToLower(tag), text) {
			return true
		}
	}
	return false
}

// Filter returns the commands matching q in their original order.
func Filter(commands []model.Command, q Query) []model.Command {
	filtered := make([]model.Command, 0, len(commands))
	for _, c := range commands {
		if q.Matches(c) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// Categories returns All followed by each distinct non-empty category in
// order of first appearance.
func Categories(commands []model.Command) []string {
	return append([]string{All}, distinctCategories(commands)...)
}

// SuggestCategories ranks existing categories against input for editor
// autocomplete. Empty input returns every category. limit <= 0 means no
// limit.
func SuggestCategories(commands []model.Command, input string, limit int) []string {
	categories := distinctCategories(commands)

	var out []string
	input = strings.TrimSpace(input)
	if input == "" {
		out = categories
	} else {
		for _, m := range fuzzy.Find(input, categories) {
			out = append(out, m.Str)
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func distinctCategories(commands []model.Command) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range commands {
		if c.Category == "" || seen[c.Category] {
			continue
		}
		seen[c.Category] = true
		out = append(out, c.Category)
	}
	return out
}
