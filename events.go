package weave

import (
	"sync"

	"github.com/tendermint/tendermint/libs/common"
)

// Event is a notification about a state change that was persisted. Events
// are produced by handlers and published only after the transaction that
// produced them succeeded.
type Event interface {
	// EventName is a short identifier, for example "FundsSent".
	EventName() string
	// Attributes returns the event payload as ordered key value pairs.
	Attributes() []common.KVPair
}

// EventEmitter publishes events to the outside world.
type EventEmitter interface {
	Emit(ctx Context, events ...Event)
}

// EventLog is an in memory EventEmitter that keeps every emitted event in
// emission order. It is safe for concurrent use.
type EventLog struct {
	mu     sync.Mutex
	events []Event
}

var _ EventEmitter = (*EventLog)(nil)

// Emit appends all events to the log.
func (l *EventLog) Emit(ctx Context, events ...Event) {
	l.mu.Lock()
	l.events = append(l.events, events...)
	l.mu.Unlock()
}

// Events returns a copy of all events emitted so far.
func (l *EventLog) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event(nil), l.events...)
}

// Reset drops all collected events.
func (l *EventLog) Reset() {
	l.mu.Lock()
	l.events = nil
	l.mu.Unlock()
}

// LoggingEmitter is an EventEmitter that writes every event to the context
// logger.
type LoggingEmitter struct{}

var _ EventEmitter = LoggingEmitter{}

func (LoggingEmitter) Emit(ctx Context, events ...Event) {
	logger := GetLogger(ctx)
	for _, e := range events {
		keyvals := []interface{}{"event", e.EventName()}
		for _, a := range e.Attributes() {
			keyvals = append(keyvals, string(a.Key), string(a.Value))
		}
		logger.Info("event emitted", keyvals...)
	}
}

// MultiEmitter forwards every event to all emitters, in order.
type MultiEmitter []EventEmitter

func (m MultiEmitter) Emit(ctx Context, events ...Event) {
	for _, e := range m {
		e.Emit(ctx, events...)
	}
}
