package model

import "time"

// CopyLog records one clipboard copy. Title and Template are snapshots taken
// at copy time; CommandID may point at a command that no longer exists.
type CopyLog struct {
	ID            string    `json:"id"`
	CommandID     string    `json:"commandId"`
	Template      string    `json:"template"`
	Title         string    `json:"title"`
	FilledCommand string    `json:"filledCommand"`
	Timestamp     time.Time `json:"timestamp"`
}
