package treasurytest

import "github.com/iov-one/treasury"

// Handler is a mock implementation of the treasury.Handler interface.
// Each method call is counted.
type Handler struct {
	checkCall   int
	CheckResult treasury.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult treasury.DeliverResult
	DeliverErr    error
}

var _ treasury.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	h.checkCall++
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	h.deliverCall++
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// Decorator is a mock implementation of the treasury.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding method.
// Otherwise the wrapped handler is called.
type Decorator struct {
	checkCall int
	CheckErr  error

	deliverCall int
	DeliverErr  error
}

var _ treasury.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx, next treasury.Checker) (*treasury.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx, next treasury.Deliverer) (*treasury.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate returns a handler that passes every call through given decorator.
func Decorate(h treasury.Handler, d treasury.Decorator) treasury.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn treasury.Handler
	dc treasury.Decorator
}

func (d *decoratedHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
