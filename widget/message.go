// Package widget holds the chat widget state: panel visibility, the
// append-only transcript and the send flow. It has no terminal or network code;
// hosts drive it from a single goroutine and run Fetch wherever they like.
package widget

// Sender identifies who produced a transcript entry.
type Sender int

const (
	User Sender = iota
	Bot
)

func (s Sender) String() string {
	switch s {
	case User:
		return "User"
	case Bot:
		return "Bot"
	default:
		return "Unknown"
	}
}

// Label returns the name shown in front of a rendered entry.
func (s Sender) Label() string {
	if s == User {
		return "You"
	}
	return s.String()
}

// Message is one transcript entry. It has no identity beyond its position.
type Message struct {
	Sender Sender
	Text   string
}

// Transcript is an ordered, append-only sequence of messages.
type Transcript struct {
	entries []Message
}

// Append adds m as the newest entry.
func (t *Transcript) Append(m Message) {
	t.entries = append(t.entries, m)
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// At returns the i-th entry, oldest first.
func (t *Transcript) At(i int) Message {
	return t.entries[i]
}

// Last returns the newest entry and false when the transcript is empty.
func (t *Transcript) Last() (Message, bool) {
	if len(t.entries) == 0 {
		return Message{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// Messages returns a copy of all entries, oldest first.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.entries))
	copy(out, t.entries)
	return out
}

// Visibility is the two-state panel flag.
type Visibility int

const (
	Open Visibility = iota
	Closed
)

func (v Visibility) String() string {
	if v == Closed {
		return "closed"
	}
	return "open"
}
