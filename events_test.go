package weave

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/common"
)

type namedEvent string

func (e namedEvent) EventName() string            { return string(e) }
func (e namedEvent) Attributes() []common.KVPair { return nil }

func TestEventLog(t *testing.T) {
	var l EventLog
	ctx := context.Background()

	l.Emit(ctx, namedEvent("a"), namedEvent("b"))
	l.Emit(ctx, namedEvent("c"))
	assert.Equal(t, []Event{namedEvent("a"), namedEvent("b"), namedEvent("c")}, l.Events())

	// returned slice must not share memory with the log
	events := l.Events()
	events[0] = namedEvent("x")
	assert.Equal(t, namedEvent("a"), l.Events()[0])

	l.Reset()
	assert.Empty(t, l.Events())
}

func TestEventLogConcurrent(t *testing.T) {
	var l EventLog
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Emit(ctx, namedEvent("e"))
		}()
	}
	wg.Wait()
	assert.Len(t, l.Events(), 20)
}

func TestMultiEmitter(t *testing.T) {
	var a, b EventLog
	m := MultiEmitter{&a, &b, LoggingEmitter{}}
	m.Emit(context.Background(), namedEvent("x"))

	assert.Equal(t, []Event{namedEvent("x")}, a.Events())
	assert.Equal(t, []Event{namedEvent("x")}, b.Events())
}
