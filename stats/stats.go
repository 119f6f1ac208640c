// Package stats ranks copy events for the usage dashboard. Rankings are
// recomputed from the full log on every call.
package stats

import (
	"sort"

	"snipbox/model"
)

// DefaultLimit is how many entries each dashboard ranking shows.
const DefaultLimit = 10

// Entry is one ranked group. Labels come from the first log in the group,
// never from the live command.
type Entry struct {
	Key           string
	CommandID     string
	Title         string
	Template      string
	FilledCommand string
	Count         int
}

// TopFilled groups logs by the exact string that was copied.
func TopFilled(logs []model.CopyLog, n int) []Entry {
	return top(logs, n, func(l model.CopyLog) string { return l.FilledCommand })
}

// TopCommands groups logs by the command they were copied from.
func TopCommands(logs []model.CopyLog, n int) []Entry {
	return top(logs, n, func(l model.CopyLog) string { return l.CommandID })
}

// top counts logs per key and returns the n largest groups. Equal counts
// keep the order in which their key first appeared.
func top(logs []model.CopyLog, n int, key func(model.CopyLog) string) []Entry {
	var entries []Entry
	index := make(map[string]int)
	for _, l := range logs {
		k := key(l)
		if i, ok := index[k]; ok {
			entries[i].Count++
			continue
		}
		index[k] = len(entries)
		entries = append(entries, Entry{
			Key:           k,
			CommandID:     l.CommandID,
			Title:         l.Title,
			Template:      l.Template,
			FilledCommand: l.FilledCommand,
			Count:         1,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
