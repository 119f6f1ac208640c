// Package card holds the per-command variable state shown while filling in
// a template, and the copy action that records usage.
package card

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"snipbox/clipboard"
	"snipbox/logging"
	"snipbox/model"
	"snipbox/placeholder"
)

// Appender records copy events.
type Appender interface {
	Append(entry model.CopyLog) (model.CopyLog, error)
}

// Card pairs a command with the values typed for its variables. Values live
// as long as the card; a new card starts empty.
type Card struct {
	Command  model.Command
	bindings map[string]string
}

func New(cmd model.Command) *Card {
	return &Card{Command: cmd, bindings: make(map[string]string)}
}

func (c *Card) Variables() []string {
	return placeholder.ExtractVariables(c.Command.Template)
}

func (c *Card) Set(name, value string) {
	c.bindings[name] = value
}

func (c *Card) Value(name string) string {
	return c.bindings[name]
}

func (c *Card) Bindings() map[string]string {
	return maps.Clone(c.bindings)
}

// Resolved returns the template with every non-empty value substituted.
func (c *Card) Resolved() string {
	return placeholder.ReplaceVariables(c.Command.Template, c.bindings)
}

// Copy writes the resolved command to clip and, only if that succeeds,
// appends a CopyLog snapshot. Unfilled markers are copied as they are.
func (c *Card) Copy(clip clipboard.Writer, log Appender, now time.Time) (model.CopyLog, error) {
	filled := c.Resolved()
	if err := clip.WriteAll(filled); err != nil {
		if !errors.Is(err, clipboard.ErrUnavailable) {
			err = fmt.Errorf("%w: %v", clipboard.ErrUnavailable, err)
		}
		logging.Warn().Err(err).Str("command", c.Command.ID).Msg("copy failed")
		return model.CopyLog{}, err
	}

	entry, err := log.Append(model.CopyLog{
		CommandID:     c.Command.ID,
		Template:      c.Command.Template,
		Title:         c.Command.Title,
		FilledCommand: filled,
		Timestamp:     now,
	})
	if err != nil {
		return model.CopyLog{}, fmt.Errorf("record copy: %w", err)
	}
	return entry, nil
}
