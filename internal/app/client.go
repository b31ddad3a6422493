// Package app keeps a rendered activity page in sync with the activities
// API and serves it over HTTP.
package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/klabast/wb-services/aktivitaeten/internal/activity"
	"github.com/klabast/wb-services/aktivitaeten/internal/api"
	"github.com/klabast/wb-services/aktivitaeten/internal/dom"
	"github.com/klabast/wb-services/aktivitaeten/internal/i18n"
)

// Backend is the remote source of activities.
type Backend interface {
	Activities(ctx context.Context) (*activity.Collection, error)
	Signup(ctx context.Context, name, email string) (string, error)
	RemoveParticipant(ctx context.Context, name, email string) (string, error)
}

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// MessageKind selects the styling of the message banner.
type MessageKind string

const (
	MessageInfo    MessageKind = "info"
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// ValidationError reports input rejected before any request was made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// Options configures a SyncClient.
type Options struct {
	Logger         *slog.Logger
	Clock          clockwork.Clock
	Confirmer      Confirmer
	Language       language.Tag
	MessageTimeout time.Duration
}

// SyncClient owns the rendered page and keeps it consistent with the
// backend. Its document must only be touched from the goroutine running
// Run, or before Run is started.
type SyncClient struct {
	backend        Backend
	doc            *dom.Document
	logger         *slog.Logger
	clock          clockwork.Clock
	confirm        Confirmer
	lang           language.Tag
	p              *message.Printer
	messageTimeout time.Duration

	dismissTimer clockwork.Timer
	messageSeq   uint64

	handlers map[Action]handlerFunc
	queue    chan request
	started  chan struct{}
	stopped  chan struct{}
}

// New creates a client rendering into a fresh page skeleton.
func New(backend Backend, opts Options) (*SyncClient, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Confirmer == nil {
		// Without a way to ask, removals are never confirmed.
		opts.Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return false, nil })
	}
	if opts.Language == language.Und {
		opts.Language = i18n.Default
	}
	if opts.MessageTimeout <= 0 {
		opts.MessageTimeout = DefaultMessageTimeout
	}

	p := i18n.Printer(opts.Language)
	doc, err := newDocument(opts.Language, p)
	if err != nil {
		return nil, err
	}

	c := &SyncClient{
		backend:        backend,
		doc:            doc,
		logger:         opts.Logger,
		clock:          opts.Clock,
		confirm:        opts.Confirmer,
		lang:           opts.Language,
		p:              p,
		messageTimeout: opts.MessageTimeout,
		queue:          make(chan request),
		started:        make(chan struct{}),
		stopped:        make(chan struct{}),
	}
	c.handlers = c.dispatchTable()
	return c, nil
}

// Document returns the page. Callers must respect the ownership rule of
// SyncClient.
func (c *SyncClient) Document() *dom.Document {
	return c.doc
}

// LoadActivities fetches the whole collection and re-renders the list and
// the select options. On failure the list shows an error paragraph.
func (c *SyncClient) LoadActivities(ctx context.Context) error {
	c.showListText("", c.p.Sprintf(i18n.Loading))

	coll, err := c.backend.Activities(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "Error loading activities", "error", err)
		c.showListText("info", c.p.Sprintf(i18n.LoadFailed))
		return err
	}

	c.renderActivities(coll)
	c.logger.DebugContext(ctx, "Rendered activities", "count", coll.Len())
	return nil
}

// Signup registers email for the named activity and reconciles its card.
func (c *SyncClient) Signup(ctx context.Context, name, email string) error {
	email = strings.TrimSpace(email)
	c.setForm(name, email)

	if name == "" {
		c.showMessage(c.p.Sprintf(i18n.SelectActivity), MessageError)
		return &ValidationError{Field: "activity", Reason: "required"}
	}
	if email == "" {
		c.showMessage(c.p.Sprintf(i18n.EnterEmail), MessageError)
		return &ValidationError{Field: "email", Reason: "required"}
	}

	msg, err := c.backend.Signup(ctx, name, email)
	if err != nil {
		c.logger.ErrorContext(ctx, "Error signing up", "activity", name, "error", err)
		c.showMessage(c.failureText(err, c.p.Sprintf(i18n.SignupFailed)), MessageError)
		return err
	}

	if msg == "" {
		msg = c.p.Sprintf(i18n.SignupSucceeded)
	}
	c.showMessage(msg, MessageSuccess)

	if err := c.reconcile(ctx, name); err != nil {
		return err
	}
	c.resetForm()
	return nil
}

// RemoveParticipant asks for confirmation, removes email from the named
// activity and reconciles its card. A declined confirmation does nothing.
func (c *SyncClient) RemoveParticipant(ctx context.Context, name, email string) error {
	return c.removeParticipant(ctx, c.confirm, name, email)
}

func (c *SyncClient) removeParticipant(ctx context.Context, confirm Confirmer, name, email string) error {
	if name == "" {
		c.showMessage(c.p.Sprintf(i18n.SelectActivity), MessageError)
		return &ValidationError{Field: "activity", Reason: "required"}
	}
	if email == "" {
		c.showMessage(c.p.Sprintf(i18n.EnterEmail), MessageError)
		return &ValidationError{Field: "email", Reason: "required"}
	}

	ok, err := confirm.Confirm(ctx, c.p.Sprintf(i18n.ConfirmRemoval, email, name))
	if err != nil {
		c.logger.WarnContext(ctx, "Confirmation failed", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	msg, err := c.backend.RemoveParticipant(ctx, name, email)
	if err != nil {
		c.logger.ErrorContext(ctx, "Error removing participant", "activity", name, "error", err)
		c.showMessage(c.failureText(err, c.p.Sprintf(i18n.RemovalFailed)), MessageError)
		return err
	}

	if msg == "" {
		msg = c.p.Sprintf(i18n.RemovalSucceeded)
	}
	c.showMessage(msg, MessageSuccess)
	c.removeEntry(name, email)

	return c.reconcile(ctx, name)
}

// reconcile re-fetches the collection and refreshes the named card. When
// the card is not on the page or the activity vanished, the whole list is
// rendered again.
func (c *SyncClient) reconcile(ctx context.Context, name string) error {
	coll, err := c.backend.Activities(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "Error refreshing activities", "activity", name, "error", err)
		c.showMessage(c.p.Sprintf(i18n.LoadFailed), MessageError)
		return err
	}

	a, ok := coll.Get(name)
	if ok && c.refreshCard(name, a) {
		return nil
	}
	c.renderActivities(coll)
	return nil
}

// failureText returns the server's error text or the fallback message.
func (c *SyncClient) failureText(err error, fallback string) string {
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	return fallback
}

// showMessage displays text in the message banner and schedules its
// dismissal. A newer message cancels the pending dismissal.
func (c *SyncClient) showMessage(text string, kind MessageKind) {
	el := c.doc.ByID(MessageID)
	dom.SetText(el, text)
	dom.SetAttr(el, "class", "message "+string(kind))
	c.scheduleDismiss()
}

// scheduleDismiss arms the dismissal of the current message and cancels the
// previous one.
func (c *SyncClient) scheduleDismiss() {
	if c.dismissTimer != nil {
		c.dismissTimer.Stop()
	}
	c.messageSeq++
	seq := c.messageSeq
	c.dismissTimer = c.clock.AfterFunc(c.messageTimeout, func() {
		c.post(Event{Action: ActionDismiss, seq: seq})
	})
}

// dismissMessage hides the banner if seq still identifies the current message.
func (c *SyncClient) dismissMessage(seq uint64) {
	if seq != c.messageSeq {
		return
	}
	dom.AddClass(c.doc.ByID(MessageID), HiddenClass)
	c.dismissTimer = nil
}
