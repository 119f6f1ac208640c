package store

import (
	"slices"

	"snipbox/logging"
	"snipbox/model"
)

// UsageLog is the append-only list of copy events.
type UsageLog struct {
	backend Backend
	logs    []model.CopyLog
	newID   IDFunc
}

func NewUsageLog(backend Backend) (*UsageLog, error) {
	u := &UsageLog{backend: backend, newID: defaultID}
	if err := loadJSON(backend, CopyLogsKey, &u.logs); err != nil {
		return nil, err
	}
	return u, nil
}

// Append stores entry, assigning an ID when it has none.
func (u *UsageLog) Append(entry model.CopyLog) (model.CopyLog, error) {
	if entry.ID == "" {
		entry.ID = u.newID()
	}

	next := append(slices.Clone(u.logs), entry)
	if err := saveJSON(u.backend, CopyLogsKey, next); err != nil {
		logging.Error().Err(err).Msg("persist copy log")
		return model.CopyLog{}, err
	}
	u.logs = next

	logging.Info().Str("command", entry.CommandID).Msg("copy recorded")
	return entry, nil
}

// List returns the logs oldest first.
func (u *UsageLog) List() []model.CopyLog {
	return slices.Clone(u.logs)
}
