package model

import (
	"fmt"
	"strings"
	"time"
)

type Command struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Template    string    `json:"template"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CommandForm is the editable part of a Command. The store assigns ID and
// CreatedAt.
type CommandForm struct {
	Title       string   `json:"title"`
	Template    string   `json:"template"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

// ValidationError reports a required form field that was left blank.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (f CommandForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(f.Template) == "" {
		return &ValidationError{Field: "template"}
	}
	return nil
}

// Form returns the editable fields of c, e.g. to prefill the editor.
func (c Command) Form() CommandForm {
	return CommandForm{
		Title:       c.Title,
		Template:    c.Template,
		Description: c.Description,
		Category:    c.Category,
		Tags:        append([]string(nil), c.Tags...),
	}
}

// ParseTags splits comma separated input, dropping blanks and repeats.
func ParseTags(s string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
