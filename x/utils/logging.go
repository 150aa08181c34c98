package utils

import (
	"time"

	"github.com/iov-one/weave-splitter"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ weave.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (r Logging) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, 0, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var (
		resLog string
		events int
	)
	if err == nil {
		resLog = res.Log
		events = len(res.Events)
	}
	logDuration(ctx, tx, start, resLog, events, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx weave.Context, tx weave.Tx, start time.Time, msg string, events int, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := weave.GetLogger(ctx).With(
		"duration", delta/time.Microsecond,
		"path", txPath(tx),
	)

	if err != nil {
		logger.Error(msg, "err", err)
		return
	}
	if lowPrio {
		logger.Debug(msg)
	} else {
		logger.Info(msg, "events", events)
	}
}

func txPath(tx weave.Tx) string {
	if tx == nil {
		return "(missing)"
	}
	return weave.GetPath(tx)
}
