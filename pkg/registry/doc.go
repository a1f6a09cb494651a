// Package registry provides a generic name → item table used to map
// command names onto the actions that render them.
//
// Registries are built once with a Builder and are immutable afterwards,
// so a single registry can be shared by any number of documents and
// goroutines without locking. A builder may start from an existing
// registry (Extend) and override or add entries; the parent is never
// modified.
//
// A name can be registered as silent: Lookup reports it as found but
// returns the zero item. Documents use this to drop commands a format
// knows about but does not render.
package registry
