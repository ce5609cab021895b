// Package audit defines the structured audit record and its consumers.
//
// # Components
//
//   - [Event] — immutable audit fact: kind, subject, client IP, timestamp.
//   - [Sink] — interface for event consumers (channel, JSON writer, no-op).
//
// # Architecture boundaries
//
// This package owns the event model and sink delivery. It does NOT decide
// which events to emit — that responsibility belongs to the Engine — and it
// never fails a request: sinks are best-effort by contract.
//
// # What this package must NOT do
//
//   - Filter or suppress events based on business logic.
//   - Import authgate or any sibling internal package.
//   - Perform network I/O beyond what a caller-supplied Sink does.
package audit
