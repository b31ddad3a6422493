package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/klabast/wb-services/aktivitaeten/internal/dom"
)

// Action names a UI event. Controls on the page carry it in data-action,
// forms post it as the "action" field.
type Action string

const (
	ActionLoad    Action = "load"
	ActionSignup  Action = "signup"
	ActionRemove  Action = "remove"
	ActionDismiss Action = "dismiss"
)

var (
	// ErrUnknownAction is returned for events no handler is registered for.
	ErrUnknownAction = errors.New("unknown action")
	// ErrStopped is returned once the event loop has exited.
	ErrStopped = errors.New("event loop stopped")
)

// Event is a UI event dispatched to the client.
type Event struct {
	Action   Action
	Activity string
	Email    string
	// Confirm overrides the client's confirmer for removals.
	Confirm Confirmer

	seq uint64
}

type handlerFunc func(ctx context.Context, ev Event) error

type request struct {
	ctx  context.Context
	fn   func(ctx context.Context) error
	done chan error
}

func (c *SyncClient) dispatchTable() map[Action]handlerFunc {
	return map[Action]handlerFunc{
		ActionLoad: func(ctx context.Context, ev Event) error {
			return c.LoadActivities(ctx)
		},
		ActionSignup: func(ctx context.Context, ev Event) error {
			return c.Signup(ctx, ev.Activity, ev.Email)
		},
		ActionRemove: func(ctx context.Context, ev Event) error {
			confirm := c.confirm
			if ev.Confirm != nil {
				confirm = ev.Confirm
			}
			return c.removeParticipant(ctx, confirm, ev.Activity, ev.Email)
		},
		ActionDismiss: func(ctx context.Context, ev Event) error {
			c.dismissMessage(ev.seq)
			return nil
		},
	}
}

// Dispatch runs the handler registered for ev.Action. It must be called on
// the loop goroutine; other goroutines use Submit.
func (c *SyncClient) Dispatch(ctx context.Context, ev Event) error {
	h, ok := c.handlers[ev.Action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
	}
	return h(ctx, ev)
}

// Run loads the activities and then processes events until ctx is done.
// It must be called exactly once.
//
// Handlers run detached from the submitter's cancellation: a request that
// reached the server is always followed by its reconciliation, even when
// the submitter stopped waiting.
func (c *SyncClient) Run(ctx context.Context) error {
	defer close(c.stopped)
	defer func() {
		if c.dismissTimer != nil {
			c.dismissTimer.Stop()
		}
	}()

	close(c.started)
	// Dismissals that fired before the loop ran were dropped.
	if !dom.HasClass(c.doc.ByID(MessageID), HiddenClass) {
		c.scheduleDismiss()
	}

	// Load errors are already rendered into the page.
	_ = c.LoadActivities(context.WithoutCancel(ctx))

	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-c.queue:
			req.done <- req.fn(context.WithoutCancel(req.ctx))
		}
	}
}

// Submit hands ev to the event loop and waits for its handler to finish.
func (c *SyncClient) Submit(ctx context.Context, ev Event) error {
	return c.exec(ctx, func(ctx context.Context) error {
		return c.Dispatch(ctx, ev)
	})
}

// Snapshot renders the current page on the event loop.
func (c *SyncClient) Snapshot(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	err := c.exec(ctx, func(context.Context) error {
		return c.doc.Render(&buf)
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// View returns a plain projection of the current page, read on the event loop.
func (c *SyncClient) View(ctx context.Context) (*View, error) {
	var v *View
	err := c.exec(ctx, func(context.Context) error {
		v = c.view()
		return nil
	})
	return v, err
}

func (c *SyncClient) exec(ctx context.Context, fn func(ctx context.Context) error) error {
	req := request{ctx: ctx, fn: fn, done: make(chan error, 1)}

	select {
	case c.queue <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-c.stopped:
		return ErrStopped
	}

	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post queues ev from a goroutine that does not wait for the result, such as
// a timer callback. Events posted before Run started are dropped.
func (c *SyncClient) post(ev Event) {
	select {
	case <-c.started:
	default:
		return
	}
	go func() {
		_ = c.exec(context.Background(), func(ctx context.Context) error {
			return c.Dispatch(ctx, ev)
		})
	}()
}
