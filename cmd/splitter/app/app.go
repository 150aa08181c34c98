/*
Package app links together all the various components
to construct the splitter app.
*/
package app

import (
	"path/filepath"

	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/app"
	"github.com/iov-one/weave-splitter/errors"
	"github.com/iov-one/weave-splitter/store/bolt"
	"github.com/iov-one/weave-splitter/store/iavl"
	"github.com/iov-one/weave-splitter/x"
	"github.com/iov-one/weave-splitter/x/cash"
	"github.com/iov-one/weave-splitter/x/sigs"
	"github.com/iov-one/weave-splitter/x/splitter"
	"github.com/iov-one/weave-splitter/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Chain returns a chain of decorators, to handle authentication,
// logging and panic recovery before calling into a handler.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a default router, only dispatching to the splitter
// extension.
func Router(ctrl cash.Controller) *app.Router {
	r := app.NewRouter()
	splitter.RegisterRoutes(r, x.ContextOrigin{}, ctrl)
	return r
}

// Stack wires up the full handler of the application.
func Stack() weave.Handler {
	return Chain().WithHandler(Router(cash.NewController()))
}

// Initializers returns all the initializers used by the application to
// load the genesis state.
func Initializers() weave.Initializer {
	return app.ChainInitializers(
		&sigs.Initializer{},
		&cash.Initializer{},
		&splitter.Initializer{},
	)
}

// Supported store backends.
const (
	BackendBolt = "bolt"
	BackendIAVL = "iavl"
)

// OpenStore opens or creates the application state inside of given home
// directory using the requested backend. The latest committed version is
// loaded.
func OpenStore(home, backend string) (weave.CommitKVStore, error) {
	var (
		db  weave.CommitKVStore
		err error
	)
	switch backend {
	case BackendBolt, "":
		db, err = bolt.NewCommitStore(filepath.Join(home, "state.db"))
	case BackendIAVL:
		db, err = iavl.NewCommitStore(home, "splitter")
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown store backend %q", backend)
	}
	if err != nil {
		return nil, err
	}
	if err := db.LoadLatestVersion(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewExecutor returns an executor running the full application stack on
// top of given store.
func NewExecutor(db weave.CommitKVStore, emitter weave.EventEmitter, logger log.Logger) (*app.Executor, error) {
	return app.NewExecutor(db, Stack(), TxDecoder, emitter, logger)
}
