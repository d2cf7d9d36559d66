package domain

import "time"

// TileStatus is the derived, never-persisted availability state of one
// activity. It is rebuilt from the transaction ledger on every sweep and
// advanced by wall-clock ticks and manual actions in between, so it can
// diverge from the ledger until the next sweep.
type TileStatus struct {
	ActivityID    uint       `json:"activity_id"`
	Available     bool       `json:"available"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
	NextAvailable string     `json:"next_available,omitempty"` // HH:MM
	Countdown     string     `json:"countdown,omitempty"`      // M:SS
	Paused        bool       `json:"paused,omitempty"`
}

// StatusEvent is published on every tile transition and streamed to
// subscribed clients.
type StatusEvent struct {
	TileStatus
	Message string `json:"message,omitempty"`
}
