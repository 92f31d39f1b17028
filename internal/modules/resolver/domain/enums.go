//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// CacheState classifies a lookup against the cache document:
// fresh = valid cache and name present, stale_miss = valid cache but
// name absent, expired = cache invalid or never populated.
// ENUM(fresh,stale_miss,expired)
type CacheState string
