package app

import (
	"context"
	"sync"

	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Executor runs transactions against a commit store one at a time.
//
// Each delivered transaction is processed on a cache wrap of the store. Only
// when the handler succeeds the changes are written and committed, and only
// then the events returned by the handler are emitted. A single lock is held
// for the whole duration of a call, so no two calls ever interleave.
type Executor struct {
	mu      sync.Mutex
	store   weave.CommitKVStore
	handler weave.Handler
	decoder weave.TxDecoder
	emitter weave.EventEmitter
	logger  log.Logger
	debug   bool

	chainID string
	height  int64
}

// NewExecutor returns an executor that is using the latest committed state
// of given store.
func NewExecutor(
	store weave.CommitKVStore,
	handler weave.Handler,
	decoder weave.TxDecoder,
	emitter weave.EventEmitter,
	logger log.Logger,
) (*Executor, error) {
	if logger == nil {
		logger = weave.DefaultLogger
	}
	if emitter == nil {
		emitter = weave.LoggingEmitter{}
	}
	id, err := store.LatestVersion()
	if err != nil {
		return nil, errors.Wrap(err, "cannot read latest version")
	}
	chainID, err := loadChainID(store)
	if err != nil {
		return nil, err
	}
	return &Executor{
		store:   store,
		handler: handler,
		decoder: decoder,
		emitter: emitter,
		logger:  logger,
		chainID: chainID,
		height:  id.Version,
	}, nil
}

// WithDebug returns an executor that includes full error details in the
// ABCI responses.
func (e *Executor) WithDebug(debug bool) *Executor {
	e.debug = debug
	return e
}

// ChainID returns the chain id set at genesis, or an empty string if the
// chain was not initialized yet.
func (e *Executor) ChainID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chainID
}

// Height returns the version of the last committed state.
func (e *Executor) Height() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.height
}

// InitChain stores the chain id and initializes the state of all
// extensions from the genesis. It can be called only once per store.
func (e *Executor) InitChain(gen Genesis, init weave.Initializer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.chainID != "" {
		return errors.Wrapf(errors.ErrState, "chain %q already initialized", e.chainID)
	}

	cache := e.store.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if err := init.FromGenesis(gen.AppState, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "genesis")
	}
	if err := e.commit(cache); err != nil {
		return err
	}
	e.chainID = gen.ChainID
	e.logger.Info("chain initialized", "chain_id", gen.ChainID, "height", e.height)
	return nil
}

// Deliver executes given transaction and commits the result.
func (e *Executor) Deliver(ctx context.Context, tx weave.Tx) (*weave.DeliverResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, err := e.blockContext(ctx, "deliver_tx", tx)
	if err != nil {
		return nil, err
	}

	cache := e.store.CacheWrap()
	res, err := e.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := e.commit(cache); err != nil {
		return nil, err
	}
	if len(res.Events) != 0 {
		e.emitter.Emit(ctx, res.Events...)
	}
	return res, nil
}

// Check validates given transaction against the current state. Nothing is
// ever written.
func (e *Executor) Check(ctx context.Context, tx weave.Tx) (*weave.CheckResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, err := e.blockContext(ctx, "check_tx", tx)
	if err != nil {
		return nil, err
	}
	cache := e.store.CacheWrap()
	defer cache.Discard()
	return e.handler.Check(ctx, cache, tx)
}

// DeliverTx decodes and delivers a serialized transaction.
func (e *Executor) DeliverTx(ctx context.Context, txBytes []byte) abci.ResponseDeliverTx {
	tx, err := e.decoder(txBytes)
	if err != nil {
		return weave.DeliverTxError(errors.Wrap(err, "cannot decode transaction"), e.debug)
	}
	res, err := e.Deliver(ctx, tx)
	return weave.DeliverOrError(res, err, e.debug)
}

// CheckTx decodes and checks a serialized transaction.
func (e *Executor) CheckTx(ctx context.Context, txBytes []byte) abci.ResponseCheckTx {
	tx, err := e.decoder(txBytes)
	if err != nil {
		return weave.CheckTxError(errors.Wrap(err, "cannot decode transaction"), e.debug)
	}
	res, err := e.Check(ctx, tx)
	return weave.CheckOrError(res, err, e.debug)
}

// View calls fn with a read only view of the latest committed state.
func (e *Executor) View(fn func(db weave.ReadOnlyKVStore) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cache := e.store.CacheWrap()
	defer cache.Discard()
	return fn(cache)
}

func (e *Executor) blockContext(ctx context.Context, call string, tx weave.Tx) (weave.Context, error) {
	if e.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	height := e.height + 1
	ctx = weave.WithHeight(ctx, height)
	ctx = weave.WithChainID(ctx, e.chainID)
	ctx = weave.WithLogger(ctx, e.logger.With(
		"call", call,
		"height", height,
		"path", weave.GetPath(tx),
	))
	return ctx, nil
}

// commit writes the cache into the store and persists a new version.
func (e *Executor) commit(cache weave.KVCacheWrap) error {
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "cannot write state")
	}
	id, err := e.store.Commit()
	if err != nil {
		return errors.Wrap(err, "cannot commit state")
	}
	e.height = id.Version
	return nil
}
