package store

import (
	"slices"
	"strings"
	"time"

	"snipbox/logging"
	"snipbox/model"
)

// Commands is the ordered command collection, newest first.
type Commands struct {
	backend  Backend
	commands []model.Command
	now      Clock
	newID    IDFunc
}

type CommandsOption func(*Commands)

func WithClock(now Clock) CommandsOption {
	return func(c *Commands) { c.now = now }
}

func WithIDs(newID IDFunc) CommandsOption {
	return func(c *Commands) { c.newID = newID }
}

// NewCommands loads the persisted collection from backend.
func NewCommands(backend Backend, opts ...CommandsOption) (*Commands, error) {
	c := &Commands{
		backend: backend,
		now:     time.Now,
		newID:   defaultID,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := loadJSON(backend, CommandsKey, &c.commands); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns a copy of the collection.
func (c *Commands) List() []model.Command {
	return slices.Clone(c.commands)
}

func (c *Commands) Get(id string) (model.Command, error) {
	i := c.index(id)
	if i < 0 {
		return model.Command{}, ErrNotFound
	}
	return c.commands[i], nil
}

func (c *Commands) Create(form model.CommandForm) (model.Command, error) {
	if err := form.Validate(); err != nil {
		return model.Command{}, err
	}

	cmd := fromForm(form)
	cmd.ID = c.newID()
	cmd.CreatedAt = c.now()

	next := make([]model.Command, 0, len(c.commands)+1)
	next = append(next, cmd)
	next = append(next, c.commands...)
	if err := c.replace(next); err != nil {
		return model.Command{}, err
	}

	logging.Debug().Str("id", cmd.ID).Str("title", cmd.Title).Msg("command created")
	return cmd, nil
}

func (c *Commands) Update(id string, form model.CommandForm) (model.Command, error) {
	i := c.index(id)
	if i < 0 {
		return model.Command{}, ErrNotFound
	}
	if err := form.Validate(); err != nil {
		return model.Command{}, err
	}

	cmd := fromForm(form)
	cmd.ID = c.commands[i].ID
	cmd.CreatedAt = c.commands[i].CreatedAt

	next := slices.Clone(c.commands)
	next[i] = cmd
	if err := c.replace(next); err != nil {
		return model.Command{}, err
	}

	logging.Debug().Str("id", id).Msg("command updated")
	return cmd, nil
}

// Delete removes the command with id. Deleting an unknown id does nothing.
func (c *Commands) Delete(id string) error {
	i := c.index(id)
	if i < 0 {
		return nil
	}

	next := slices.Delete(slices.Clone(c.commands), i, i+1)
	if err := c.replace(next); err != nil {
		return err
	}

	logging.Debug().Str("id", id).Msg("command deleted")
	return nil
}

// replace persists next and only then makes it the current collection.
func (c *Commands) replace(next []model.Command) error {
	if err := saveJSON(c.backend, CommandsKey, next); err != nil {
		logging.Error().Err(err).Msg("persist commands")
		return err
	}
	c.commands = next
	return nil
}

func (c *Commands) index(id string) int {
	return slices.IndexFunc(c.commands, func(cmd model.Command) bool {
		return cmd.ID == id
	})
}

func fromForm(form model.CommandForm) model.Command {
	return model.Command{
		Title:       strings.TrimSpace(form.Title),
		Template:    form.Template,
		Description: strings.TrimSpace(form.Description),
		Category:    strings.TrimSpace(form.Category),
		Tags:        slices.Clone(form.Tags),
	}
}
