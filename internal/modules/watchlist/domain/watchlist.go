package domain

import (
	"regexp"

	"github.com/samber/lo"
)

// MaxChannels caps how many channels a single user may watch.
const MaxChannels = 50

// Slack channel names: lowercase letters, numbers, hyphens and
// underscores, at most 80 characters.
var channelNamePattern = regexp.MustCompile(`^[a-z0-9\-_]{1,80}$`)

// ValidChannelName reports whether name conforms to Slack's channel
// naming rules.
func ValidChannelName(name string) bool {
	return channelNamePattern.MatchString(name)
}

// Watchlist is one user's ordered set of watched channel names.
// Channels keeps insertion order and never holds duplicates.
type Watchlist struct {
	Channels []string `json:"channels"`
}

// Contains reports whether name is already watched.
func (w *Watchlist) Contains(name string) bool {
	return lo.Contains(w.Channels, name)
}

// Append adds name at the end of the list. Callers are responsible for
// the uniqueness and cap checks.
func (w *Watchlist) Append(name string) {
	w.Channels = append(w.Channels, name)
}

// Remove drops name from the list, preserving the order of the rest.
// It reports whether the name was present.
func (w *Watchlist) Remove(name string) bool {
	if !w.Contains(name) {
		return false
	}
	w.Channels = lo.Without(w.Channels, name)
	return true
}
