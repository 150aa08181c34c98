package splitter

import (
	"github.com/iov-one/weave-splitter"
	"github.com/iov-one/weave-splitter/errors"
	"github.com/iov-one/weave-splitter/gconf"
	"github.com/iov-one/weave-splitter/x"
)

const (
	receiveFundsCost    = 0
	perRecipientCost    = 0
	updateRecipientCost = 0
	updateShareCost     = 0
)

// RegisterRoutes registers handlers for splitter message processing.
func RegisterRoutes(r weave.Registry, origin x.OriginResolver, ctrl Transferer) {
	r.Handle(pathReceiveFundsMsg, &receiveFundsHandler{origin: origin, ctrl: ctrl})
	r.Handle(pathUpdateRecipientMsg, &updateRecipientHandler{origin: origin})
	r.Handle(pathUpdateShareMsg, &updateShareHandler{origin: origin})
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(packageName, &Configuration{}, origin))
}

type receiveFundsHandler struct {
	origin x.OriginResolver
	ctrl   Transferer
}

var _ weave.Handler = (*receiveFundsHandler)(nil)

func (h *receiveFundsHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	d, err := h.plan(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &weave.CheckResult{
		GasAllocated: receiveFundsCost + perRecipientCost*int64(len(d.Payouts)),
	}, nil
}

func (h *receiveFundsHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	d, err := h.plan(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := Distribute(db, h.ctrl, d); err != nil {
		return nil, errors.Wrap(err, "cannot distribute")
	}
	data, err := d.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot serialize distribution")
	}
	return &weave.DeliverResult{
		Data:   data,
		Events: distributionEvents(d),
	}, nil
}

// plan authorizes the caller, validates the request and computes the
// distribution from the current registry state.
func (h *receiveFundsHandler) plan(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*Distribution, error) {
	sender, err := x.RequireSigned(ctx, h.origin)
	if err != nil {
		return nil, err
	}
	var msg ReceiveFundsMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	entries, err := Recipients(db)
	if err != nil {
		return nil, err
	}
	conf, err := loadConfig(db)
	if err != nil {
		return nil, err
	}
	return Plan(entries, sender, msg.Amount, conf.Remainder)
}

type updateRecipientHandler struct {
	origin x.OriginResolver
}

var _ weave.Handler = (*updateRecipientHandler)(nil)

func (h *updateRecipientHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: updateRecipientCost}, nil
}

func (h *updateRecipientHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := SetWeight(db, msg.Recipient, msg.Shares); err != nil {
		return nil, errors.Wrap(err, "cannot store recipient")
	}
	return &weave.DeliverResult{
		Events: []weave.Event{RecipientUpdated{Recipient: msg.Recipient}},
	}, nil
}

func (h *updateRecipientHandler) validate(ctx weave.Context, tx weave.Tx) (*UpdateRecipientMsg, error) {
	if err := x.RequireRoot(ctx, h.origin); err != nil {
		return nil, err
	}
	var msg UpdateRecipientMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

type updateShareHandler struct {
	origin x.OriginResolver
}

var _ weave.Handler = (*updateShareHandler)(nil)

func (h *updateShareHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: updateShareCost}, nil
}

func (h *updateShareHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := SetPairShare(db, msg.Recipient1, msg.Recipient2, msg.Share); err != nil {
		return nil, errors.Wrap(err, "cannot store share")
	}
	return &weave.DeliverResult{
		Events: []weave.Event{ShareUpdated{Recipient1: msg.Recipient1, Recipient2: msg.Recipient2}},
	}, nil
}

func (h *updateShareHandler) validate(ctx weave.Context, tx weave.Tx) (*UpdateShareMsg, error) {
	if err := x.RequireRoot(ctx, h.origin); err != nil {
		return nil, err
	}
	var msg UpdateShareMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}
