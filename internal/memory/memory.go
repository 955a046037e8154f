package memory

import "strings"

const (
	// DefaultWindowSize is the number of turns kept when no size is given.
	DefaultWindowSize = 5
	// DefaultMaxWords caps how many words of each message are retained.
	DefaultMaxWords = 100
)

// Turn is one user message paired with the bot's reply.
type Turn struct {
	User string
	Bot  string
}

// Stats is a point-in-time snapshot of the window.
type Stats struct {
	TotalTurns int
	BufferSize int
	BufferCap  int
	BufferFull bool
}

// Window holds the most recent conversation turns in insertion order.
// When a new turn would exceed the capacity, the oldest turn is evicted.
type Window struct {
	turns    []Turn
	cap      int
	maxWords int
	total    int
}

// NewWindow creates a window holding at most size turns, truncating each
// message side to maxWords words. Non-positive arguments fall back to the
// package defaults.
func NewWindow(size, maxWords int) *Window {
	if size < 1 {
		size = DefaultWindowSize
	}
	if maxWords < 1 {
		maxWords = DefaultMaxWords
	}
	return &Window{
		turns:    make([]Turn, 0, size),
		cap:      size,
		maxWords: maxWords,
	}
}

// Append stores a turn at the end of the window, evicting the oldest turn
// when the window is full. It returns the number of evicted turns (0 or 1).
func (w *Window) Append(t Turn) int {
	t.User = truncateWords(t.User, w.maxWords)
	t.Bot = truncateWords(t.Bot, w.maxWords)

	evicted := 0
	if len(w.turns) == w.cap {
		copy(w.turns, w.turns[1:])
		w.turns = w.turns[:len(w.turns)-1]
		evicted = 1
	}
	w.turns = append(w.turns, t)
	w.total++
	return evicted
}

// Context renders all stored turns, oldest first, as alternating
// Human/Assistant lines. An empty window yields an empty string.
func (w *Window) Context() string {
	if len(w.turns) == 0 {
		return ""
	}
	var b strings.Builder
	for i, t := range w.turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("Human: ")
		b.WriteString(t.User)
		b.WriteString("\nAssistant: ")
		b.WriteString(t.Bot)
	}
	return b.String()
}

// Clear discards all stored turns and resets the lifetime counter.
func (w *Window) Clear() {
	w.turns = w.turns[:0]
	w.total = 0
}

// Len reports the number of turns currently stored.
func (w *Window) Len() int { return len(w.turns) }

// Cap reports the maximum number of turns the window holds.
func (w *Window) Cap() int { return w.cap }

// TotalTurns reports how many turns have been appended since the window was
// created or last cleared, including turns that have since been evicted.
func (w *Window) TotalTurns() int { return w.total }

// Stats returns a snapshot of the window state.
func (w *Window) Stats() Stats {
	return Stats{
		TotalTurns: w.total,
		BufferSize: len(w.turns),
		BufferCap:  w.cap,
		BufferFull: len(w.turns) == w.cap,
	}
}

// truncateWords keeps the first max words of s, marking the cut with an
// ellipsis. Messages at or under the cap are returned unchanged.
func truncateWords(s string, max int) string {
	words := strings.Fields(s)
	if len(words) <= max {
		return s
	}
	return strings.Join(words[:max], " ") + "..."
}
