// Package event carries in-process domain events. Registration and the
// outbound verification email are decoupled through it: the auth service
// dispatches, the registration mailer subscribes.
package event

import (
	"github.com/taskdeck/taskdeck/internal/model"
)

// UserRegistered is emitted after a user and a verification token have been
// committed. RawToken is the only place the unhashed secret ever travels.
type UserRegistered struct {
	User     *model.User
	RawToken string
}

type UserRegisteredHandler func(UserRegistered) error

// Dispatcher invokes subscribed handlers synchronously, in subscription
// order. A handler error stops dispatch and is returned to the caller.
type Dispatcher struct {
	userRegistered []UserRegisteredHandler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) SubscribeUserRegistered(h UserRegisteredHandler) {
	d.userRegistered = append(d.userRegistered, h)
}

func (d *Dispatcher) DispatchUserRegistered(e UserRegistered) error {
	for _, h := range d.userRegistered {
		err := h(e)
		if err != nil {
			return err
		}
	}
	return nil
}
