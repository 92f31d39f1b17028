//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package config

// AppEnv represents the application environment
// ENUM(local,production,development,testing)
type AppEnv string

// StorageBackend selects the key-value store implementation
// ENUM(file,redis)
type StorageBackend string
