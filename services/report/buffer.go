// Package report implements the streamed-report rendering pipeline: it
// consumes the upstream improvement stream and re-paces the text onto the
// browser's SSE connection so bursty deltas reveal as a steady typewriter.
package report

import "strings"

// StreamBuffer decouples network arrival from visual reveal. Deltas are
// accumulated into an authoritative running total and queued character by
// character; the drain loop pops a bounded number of characters per tick.
//
// Everything revealed is always a prefix of the eventual full text, in
// arrival order. Not safe for concurrent use: the pacing loop owns it.
type StreamBuffer struct {
	pending  []rune
	rendered strings.Builder
	total    strings.Builder
}

func NewStreamBuffer() *StreamBuffer {
	return &StreamBuffer{}
}

// Append records a delta fragment: the authoritative total grows by the
// whole fragment and each character joins the back of the pending queue.
func (b *StreamBuffer) Append(fragment string) {
	b.total.WriteString(fragment)
	b.pending = append(b.pending, []rune(fragment)...)
}

// Drain pops up to budget characters from the front of the queue, appends
// them to the rendered text and returns just the newly revealed characters.
// An empty queue yields an empty string.
func (b *StreamBuffer) Drain(budget int) string {
	if budget <= 0 || len(b.pending) == 0 {
		return ""
	}
	if budget > len(b.pending) {
		budget = len(b.pending)
	}
	revealed := string(b.pending[:budget])
	b.pending = b.pending[budget:]
	b.rendered.WriteString(revealed)
	return revealed
}

// FlushAll drains the entire queue at once, with no pacing. Used when the
// stream completes or fails.
func (b *StreamBuffer) FlushAll() string {
	return b.Drain(len(b.pending))
}

// PendingLen reports how many characters still await reveal.
func (b *StreamBuffer) PendingLen() int {
	return len(b.pending)
}

// Rendered is the text currently revealed to the user.
func (b *StreamBuffer) Rendered() string {
	return b.rendered.String()
}

// Total is the authoritative accumulation of every delta received.
func (b *StreamBuffer) Total() string {
	return b.total.String()
}
