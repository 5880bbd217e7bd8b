package config

import "sync/atomic"

// Runtime holds the live configuration. Services read a consistent
// snapshot per operation; the watcher swaps in reloaded configs without
// interrupting in-flight work.
type Runtime struct {
	current atomic.Pointer[Config]
}

// NewRuntime creates a Runtime seeded with cfg
func NewRuntime(cfg *Config) *Runtime {
	r := &Runtime{}
	r.current.Store(cfg)
	return r
}

// Snapshot returns the current configuration. The returned value must be
// treated as read-only.
func (r *Runtime) Snapshot() *Config {
	return r.current.Load()
}

// Replace swaps in a new configuration
func (r *Runtime) Replace(cfg *Config) {
	r.current.Store(cfg)
}
