package store

import "time"

// Config holds configuration for the Store.
type Config struct {
	// IDAttribute is the attribute carrying the unique identifier.
	// Default: "id"
	IDAttribute string

	// CreatedAtAttribute is the attribute stamped at creation.
	// Default: "createdAt"
	CreatedAtAttribute string

	// UpdatedAtAttribute is the attribute rewritten on every update.
	// Default: "updatedAt"
	UpdatedAtAttribute string

	// Clock supplies the current time for timestamp stamping.
	// Default: time.Now
	Clock func() time.Time
}

// DefaultConfig returns the standard attribute names and wall clock.
func DefaultConfig() Config {
	return Config{
		IDAttribute:        "id",
		CreatedAtAttribute: "createdAt",
		UpdatedAtAttribute: "updatedAt",
		Clock:              time.Now,
	}
}

// validate ensures config values are usable, filling in defaults.
func (c *Config) validate() {
	if c.IDAttribute == "" {
		c.IDAttribute = "id"
	}
	if c.CreatedAtAttribute == "" {
		c.CreatedAtAttribute = "createdAt"
	}
	if c.UpdatedAtAttribute == "" {
		c.UpdatedAtAttribute = "updatedAt"
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
}
