package cash

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r treasury.Registry, auth x.Authenticator, gw Gateway) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, gw))
}

// SendHandler will handle sending funds
type SendHandler struct {
	auth x.Authenticator
	gw   Gateway
}

var _ treasury.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, gw Gateway) SendHandler {
	return SendHandler{
		auth: auth,
		gw:   gw,
	}
}

// Check just verifies it is properly formed and authorized. Funds are not
// checked.
func (h SendHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &treasury.CheckResult{}, nil
}

// Deliver moves the funds from source to destination if
// all preconditions are met
func (h SendHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.gw.Transfer(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &treasury.DeliverResult{Data: msg.Destination}, nil
}

func (h SendHandler) validate(ctx treasury.Context, tx treasury.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := treasury.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// Make sure we have permission from the source.
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
