// Package tracker matches normalized input events against configured skill
// bindings and reports which skills should start or refresh their cooldowns.
//
// Each Binding is a small per-skill state machine. In sequence mode (the
// default) a press of the select key arms the binding and the next press of
// the skill key fires it once, returning it to idle. In hold mode the select
// key acts as a held modifier: the skill key fires for as long as the select
// key is physically down. Bindings without a select key fire on every skill
// key press in either mode.
//
// The Engine owns the ordered binding collection, routes one event at a
// time, and reports triggers in configuration order. Bindings never see
// events for keys they are not configured with, so arming state survives
// unrelated input by construction.
package tracker
