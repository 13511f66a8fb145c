package service

import "context"

// ─────────────────────────────────────────────────────────────
// EventEmitter — decouples services from any particular frontend
// ─────────────────────────────────────────────────────────────

// EventEmitter is an interface for emitting events to whatever surface is
// attached (a GUI, the MCP notification channel, nothing). Services and
// the editing session receive this interface, which makes them
// independently testable with a mock emitter.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// NoopEmitter discards all events. Used when no frontend is attached.
type NoopEmitter struct{}

func (NoopEmitter) Emit(_ context.Context, _ string, _ any) {}

// MockEmitter is a test-friendly EventEmitter that records all calls.
type MockEmitter struct {
	Events []EmittedEvent
}

// EmittedEvent holds a single recorded emission for test assertions.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}
