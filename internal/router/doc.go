// Package router funnels input events from any number of device adapters
// into one serialized dispatch worker.
//
// Adapters deliver events concurrently from their own goroutines; the
// router queues them and a single worker runs them through the tracker
// engine one at a time, so binding state machines never see interleaved
// events. Trigger and error notifications cross back to the owner via
// callbacks and never panic across the boundary.
package router
