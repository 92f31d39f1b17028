package errors

import "errors"

var (
	ErrMissingBotToken    = errors.New("SLACK_BOT_TOKEN environment variable is required")
	ErrMissingRedisURL    = errors.New("REDIS_URL is required when storage_backend is redis")
	ErrInvalidChannelName = errors.New("invalid channel name")
	ErrWatchlistFull      = errors.New("watchlist limit reached")
	ErrChannelNotFound    = errors.New("channel not found")
	ErrKeyNotFound        = errors.New("key not found")
	ErrStorage            = errors.New("storage unavailable")
)
