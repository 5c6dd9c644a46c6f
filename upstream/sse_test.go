package upstream

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"clarimed/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, raw string) []models.StreamEvent {
	t.Helper()
	var out []models.StreamEvent
	for ev := range parseSSE(context.Background(), strings.NewReader(raw)) {
		out = append(out, ev)
	}
	return out
}

func TestParseSSEDeliversEventsInOrder(t *testing.T) {
	raw := "event: validation\ndata: {\"valid\":true}\n\n" +
		"event: ttft\ndata: {\"ms\":120}\n\n" +
		"event: delta\ndata: {\"text\":\"Referto\"}\n\n" +
		"event: done\ndata: {\"text\":\"Referto\"}\n\n"

	events := collect(t, raw)
	require.Len(t, events, 4)
	assert.Equal(t, models.StreamValidation, events[0].Type)
	assert.Equal(t, models.StreamTTFT, events[1].Type)
	assert.Equal(t, models.StreamDelta, events[2].Type)
	assert.Equal(t, models.StreamDone, events[3].Type)
	assert.JSONEq(t, `{"text":"Referto"}`, string(events[2].Data))
}

func TestParseSSESkipsCommentsAndKeepAlives(t *testing.T) {
	raw := ": keep-alive\n\n" +
		"event: delta\ndata: {\"text\":\"a\"}\n\n" +
		": ping\n" +
		"event: delta\ndata: {\"text\":\"b\"}\n\n"

	events := collect(t, raw)
	require.Len(t, events, 2)
	assert.Equal(t, models.StreamDelta, events[0].Type)
	assert.Equal(t, models.StreamDelta, events[1].Type)
}

func TestParseSSEFlushesFinalEventWithoutTrailingBlank(t *testing.T) {
	raw := "event: done\ndata: {\"text\":\"x\"}"
	events := collect(t, raw)
	require.Len(t, events, 1)
	assert.Equal(t, models.StreamDone, events[0].Type)
}

func TestParseSSEJoinsMultilineData(t *testing.T) {
	raw := "event: delta\ndata: line1\ndata: line2\n\n"
	events := collect(t, raw)
	require.Len(t, events, 1)
	assert.Equal(t, "line1\nline2", string(events[0].Data))
}

func TestParseSSEStopsWhenConsumerAbandonsStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pr, pw := io.Pipe()

	events := parseSSE(ctx, pr)

	// One decoded event sits in a pending delivery nobody will take.
	_, err := io.WriteString(pw, "event: delta\ndata: {\"text\":\"a\"}\n\n")
	require.NoError(t, err)

	// Abandon the stream the way the relay handler does: the request
	// context is cancelled and the body closed, with no receiver left.
	cancel()
	require.NoError(t, pr.Close())

	// Give the parser a moment to abort the pending delivery, then the
	// channel must already be closed rather than still holding the event.
	time.Sleep(100 * time.Millisecond)
	select {
	case _, ok := <-events:
		assert.False(t, ok, "pending event delivered after the consumer went away")
	case <-time.After(time.Second):
		t.Fatal("parser goroutine did not exit")
	}
}
