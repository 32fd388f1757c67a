package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads and decodes the config file at path. Relative paths inside
	// the file are resolved against the file's directory.
	Load(ctx context.Context, path string) (*File, error)
}
