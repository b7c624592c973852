package widget

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultGreeting  = "Hello! I'm your AI assistant. Ask me anything!"
	DefaultErrorText = "Error: Could not fetch response."
)

// ErrReplyFetchFailed covers every way a reply can fail to arrive: transport
// errors, bad status, undecodable bodies and missing reply fields.
var ErrReplyFetchFailed = errors.New("reply fetch failed")

// InputBuffer is the editable text the user sends from.
type InputBuffer interface {
	Value() string
	Reset()
}

// Replier turns user text into a bot reply.
type Replier interface {
	Reply(ctx context.Context, text string) (string, error)
}

// ReplierFunc adapts a function to Replier.
type ReplierFunc func(ctx context.Context, text string) (string, error)

func (f ReplierFunc) Reply(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Outbound is a send that has been accepted and must be fetched.
type Outbound struct {
	Seq  uint64
	Text string
}

// Reply is the outcome of fetching one Outbound.
type Reply struct {
	Seq  uint64
	Text string
	Err  error
}

// Option configures a Widget.
type Option func(*Widget)

// WithGreeting overrides the first bot message.
func WithGreeting(text string) Option {
	return func(w *Widget) {
		if strings.TrimSpace(text) != "" {
			w.greeting = text
		}
	}
}

// WithErrorText overrides the message shown when a reply cannot be fetched.
func WithErrorText(text string) Option {
	return func(w *Widget) {
		if strings.TrimSpace(text) != "" {
			w.errorText = text
		}
	}
}

// WithSingleFlight refuses new sends while a request is outstanding.
func WithSingleFlight(on bool) Option {
	return func(w *Widget) {
		w.singleFlight = on
	}
}

// Widget is the chat widget state. All methods except Fetch must be called
// from the same goroutine.
type Widget struct {
	replier      Replier
	greeting     string
	errorText    string
	singleFlight bool

	transcript  Transcript
	visibility  Visibility
	initialized bool
	seq         uint64
	outstanding map[uint64]struct{}
}

// New creates a widget that asks replier for bot replies.
func New(replier Replier, opts ...Option) *Widget {
	w := &Widget{
		replier:     replier,
		greeting:    DefaultGreeting,
		errorText:   DefaultErrorText,
		outstanding: make(map[uint64]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Initialize opens the panel and appends the greeting. It only has an effect
// the first time it is called.
func (w *Widget) Initialize() (Message, bool) {
	if w.initialized {
		return Message{}, false
	}
	w.initialized = true
	w.visibility = Open
	return w.appendMessage(Bot, w.greeting), true
}

// Initialized reports whether Initialize has run.
func (w *Widget) Initialized() bool { return w.initialized }

func (w *Widget) OpenPanel() { w.visibility = Open }

func (w *Widget) ClosePanel() { w.visibility = Closed }

// TogglePanel flips the panel and returns the new state.
func (w *Widget) TogglePanel() Visibility {
	if w.visibility == Open {
		w.visibility = Closed
	} else {
		w.visibility = Open
	}
	return w.visibility
}

func (w *Widget) Visibility() Visibility { return w.visibility }

// Transcript returns the live transcript. Callers must not append to it.
func (w *Widget) Transcript() *Transcript { return &w.transcript }

// Pending returns the number of requests dispatched but not yet delivered.
func (w *Widget) Pending() int { return len(w.outstanding) }

// Submit reads buf and, when it holds non-blank text, appends the trimmed
// text as a user message, clears buf and returns the request to fetch.
// Blank input, or any input before Initialize, leaves everything untouched.
func (w *Widget) Submit(buf InputBuffer) (Outbound, Message, bool) {
	if !w.initialized {
		return Outbound{}, Message{}, false
	}
	text := strings.TrimSpace(buf.Value())
	if text == "" {
		return Outbound{}, Message{}, false
	}
	if w.singleFlight && len(w.outstanding) > 0 {
		return Outbound{}, Message{}, false
	}

	msg := w.appendMessage(User, text)
	buf.Reset()

	w.seq++
	w.outstanding[w.seq] = struct{}{}
	return Outbound{Seq: w.seq, Text: text}, msg, true
}

// Fetch performs the single request for out. It reads no mutable widget
// state and may run on any goroutine. The returned Reply always carries
// either text or an error wrapping ErrReplyFetchFailed.
func (w *Widget) Fetch(ctx context.Context, out Outbound) (r Reply) {
	r.Seq = out.Seq
	defer func() {
		if p := recover(); p != nil {
			r.Text = ""
			r.Err = fmt.Errorf("%w: %v", ErrReplyFetchFailed, p)
		}
	}()

	if w.replier == nil {
		r.Err = fmt.Errorf("%w: no replier configured", ErrReplyFetchFailed)
		return r
	}
	text, err := w.replier.Reply(ctx, out.Text)
	if err != nil {
		if !errors.Is(err, ErrReplyFetchFailed) {
			err = fmt.Errorf("%w: %w", ErrReplyFetchFailed, err)
		}
		r.Err = err
		return r
	}
	r.Text = text
	return r
}

// Deliver appends exactly one bot message for an outstanding r: its text on
// success, the fixed error text otherwise. Replies whose Seq was never
// submitted, or was already delivered, are dropped and report false.
func (w *Widget) Deliver(r Reply) (Message, bool) {
	if _, ok := w.outstanding[r.Seq]; !ok {
		return Message{}, false
	}
	delete(w.outstanding, r.Seq)
	if r.Err != nil {
		return w.appendMessage(Bot, w.errorText), true
	}
	return w.appendMessage(Bot, r.Text), true
}

func (w *Widget) appendMessage(sender Sender, text string) Message {
	m := Message{Sender: sender, Text: text}
	w.transcript.Append(m)
	return m
}
