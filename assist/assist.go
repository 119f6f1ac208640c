// Package assist turns a plain-language description into a command draft.
package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"snipbox/model"
)

var (
	// ErrMalformedResponse means the provider replied with something that is
	// not a usable command draft.
	ErrMalformedResponse = errors.New("malformed assistant response")
	ErrEmptyPrompt       = errors.New("describe the command first")
)

// Assistant drafts a command from a description. On error the returned form
// is zero and must not be applied.
type Assistant interface {
	Suggest(ctx context.Context, prompt string) (model.CommandForm, error)
}

type suggestion struct {
	Title       string   `json:"title"`
	Template    string   `json:"template"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

// ParseSuggestion decodes a JSON draft, tolerating a surrounding markdown
// code fence. Unknown fields are ignored; missing title or template is an
// ErrMalformedResponse.
func ParseSuggestion(content string) (model.CommandForm, error) {
	content = stripFence(strings.TrimSpace(content))
	if content == "" {
		return model.CommandForm{}, fmt.Errorf("%w: empty reply", ErrMalformedResponse)
	}

	var s suggestion
	if err := json.Unmarshal([]byte(content), &s); err != nil {
		return model.CommandForm{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var tags []string
	seen := make(map[string]bool)
	for _, tag := range s.Tags {
		tag = strings.TrimSpace(tag)
		if tag != "" && !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	form := model.CommandForm{
		Title:       strings.TrimSpace(s.Title),
		Template:    strings.TrimSpace(s.Template),
		Description: strings.TrimSpace(s.Description),
		Category:    strings.TrimSpace(s.Category),
		Tags:        tags,
	}
	if err := form.Validate(); err != nil {
		return model.CommandForm{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return form, nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		return ""
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
