// Package events provides the event types and emitter used to decouple the
// purchase transaction from its best-effort side effects.
package events
