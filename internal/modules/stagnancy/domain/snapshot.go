package domain

import "time"

// StagnantAfter is how long a channel may sit on its latest message
// before it counts as stagnant: two days.
const StagnantAfter = 48 * time.Hour

// Snapshot captures the latest message of a channel for one check.
// It is ephemeral, fetched fresh each run and never persisted.
type Snapshot struct {
	Timestamp  time.Time
	ReplyCount int
}

// Stagnant reports whether the message makes its channel stagnant at
// now: older than two days with no thread replies. Any reply, however
// old the message, keeps the channel out of the report.
func (s Snapshot) Stagnant(now time.Time) bool {
	return now.Sub(s.Timestamp) > StagnantAfter && s.ReplyCount == 0
}
