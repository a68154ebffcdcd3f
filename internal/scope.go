package internal

import (
	"sync"

	"github.com/srlehn/resample/internal/errors"
)

// Scope runs release funcs in reverse order of registration.
// Close is idempotent, funcs registered after Close run immediately.
type Scope interface {
	Close() error
	OnClose(onClose func() error)
}

var _ Scope = (*lifoScope)(nil)

type lifoScope struct {
	mu           sync.Mutex
	onCloseFuncs []func() error
	closed       bool
}

func NewScope() Scope { return &lifoScope{} }

func (c *lifoScope) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	funcs := c.onCloseFuncs
	c.onCloseFuncs = nil
	c.closed = true
	c.mu.Unlock()

	var errs []error
	for i := len(funcs) - 1; i > -1; i-- {
		if onCloseFunc := funcs[i]; onCloseFunc != nil {
			if err := onCloseFunc(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (c *lifoScope) OnClose(onClose func() error) {
	if c == nil || onClose == nil {
		return
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = onClose()
		return
	}
	c.onCloseFuncs = append(c.onCloseFuncs, onClose)
	c.mu.Unlock()
}
