// Package capture provides a terminal-backed input adapter.
//
// The Terminal adapter turns tcell key and mouse events into normalized
// input events for the router. It stands in for OS-level global hook
// adapters: terminals only report key presses and a limited key set, so
// tokens the normalizer does not recognize are silently skipped rather
// than surfaced as errors.
package capture
