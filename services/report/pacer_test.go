package report

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"clarimed/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emitRecorder struct {
	events []string
	datas  []interface{}
}

func (r *emitRecorder) emit(event string, data interface{}) error {
	r.events = append(r.events, event)
	r.datas = append(r.datas, data)
	return nil
}

func (r *emitRecorder) deltaText() string {
	var out string
	for i, ev := range r.events {
		if ev == "delta" {
			out += r.datas[i].(models.DeltaPayload).Text
		}
	}
	return out
}

func rawEvent(t *testing.T, typ models.StreamEventType, payload interface{}) models.StreamEvent {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return models.StreamEvent{Type: typ, Data: data}
}

func feed(events ...models.StreamEvent) <-chan models.StreamEvent {
	ch := make(chan models.StreamEvent, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	return ch
}

func TestPacerPacedRevealMatchesFinalText(t *testing.T) {
	const final = "Referto medico normale"
	rec := &emitRecorder{}
	pacer := &Pacer{Interval: time.Millisecond, CharsPerTick: 4}

	events := feed(
		rawEvent(t, models.StreamValidation, map[string]bool{"valid": true}),
		rawEvent(t, models.StreamTTFT, map[string]int{"ms": 120}),
		rawEvent(t, models.StreamDelta, models.DeltaPayload{Text: "Referto"}),
		rawEvent(t, models.StreamDelta, models.DeltaPayload{Text: " medico"}),
		rawEvent(t, models.StreamDelta, models.DeltaPayload{Text: " normale"}),
		rawEvent(t, models.StreamDone, models.DonePayload{Text: final}),
	)

	err := pacer.Run(context.Background(), events, rec.emit)
	require.NoError(t, err)

	assert.Equal(t, "validation", rec.events[0])
	assert.Equal(t, "ttft", rec.events[1])
	assert.Equal(t, "done", rec.events[len(rec.events)-1])
	assert.Equal(t, final, rec.deltaText(), "every character revealed exactly once")

	done := rec.datas[len(rec.datas)-1].(models.DonePayload)
	assert.Equal(t, final, done.Text)
}

func TestPacerFlushesWithoutAnyTick(t *testing.T) {
	// An interval far beyond the test lifetime means no tick ever fires;
	// the done handler alone must reveal the full text.
	rec := &emitRecorder{}
	pacer := &Pacer{Interval: time.Hour, CharsPerTick: 4}

	events := feed(
		rawEvent(t, models.StreamTTFT, map[string]int{"ms": 90}),
		rawEvent(t, models.StreamDelta, models.DeltaPayload{Text: "Referto"}),
		rawEvent(t, models.StreamDone, models.DonePayload{Text: "Referto"}),
	)

	err := pacer.Run(context.Background(), events, rec.emit)
	require.NoError(t, err)
	assert.Equal(t, []string{"ttft", "delta", "done"}, rec.events)
	assert.Equal(t, "Referto", rec.deltaText())
}

func TestPacerDoneWithoutTextFallsBackToAccumulation(t *testing.T) {
	rec := &emitRecorder{}
	pacer := &Pacer{Interval: time.Hour, CharsPerTick: 4}

	events := feed(
		rawEvent(t, models.StreamDelta, models.DeltaPayload{Text: "Referto"}),
		rawEvent(t, models.StreamDone, models.DonePayload{}),
	)

	err := pacer.Run(context.Background(), events, rec.emit)
	require.NoError(t, err)
	done := rec.datas[len(rec.datas)-1].(models.DonePayload)
	assert.Equal(t, "Referto", done.Text)
}

func TestPacerErrorLeavesRevealedTextStanding(t *testing.T) {
	rec := &emitRecorder{}
	pacer := &Pacer{Interval: time.Hour, CharsPerTick: 4}

	events := feed(
		rawEvent(t, models.StreamDelta, models.DeltaPayload{Text: "Referto"}),
		rawEvent(t, models.StreamError, models.StreamErrorPayload{Detail: "model unavailable"}),
	)

	err := pacer.Run(context.Background(), events, rec.emit)
	require.NoError(t, err)

	require.NotEmpty(t, rec.events)
	assert.Equal(t, "error", rec.events[len(rec.events)-1])
	errPayload := rec.datas[len(rec.datas)-1].(models.StreamErrorPayload)
	assert.Equal(t, "model unavailable", errPayload.Detail)
	// No rollback event exists; whatever was revealed before stays.
	for _, ev := range rec.events[:len(rec.events)-1] {
		assert.NotEqual(t, "done", ev)
	}
}

func TestPacerUnexpectedCloseFlushesAndReportsError(t *testing.T) {
	rec := &emitRecorder{}
	pacer := &Pacer{Interval: time.Hour, CharsPerTick: 4}

	events := feed(
		rawEvent(t, models.StreamTTFT, map[string]int{"ms": 50}),
		rawEvent(t, models.StreamDelta, models.DeltaPayload{Text: "Refer"}),
	)

	err := pacer.Run(context.Background(), events, rec.emit)
	require.NoError(t, err)
	assert.Equal(t, []string{"ttft", "delta", "error"}, rec.events)
	assert.Equal(t, "Refer", rec.deltaText())
}

func TestPacerStopsOnContextCancel(t *testing.T) {
	rec := &emitRecorder{}
	pacer := &Pacer{Interval: time.Hour, CharsPerTick: 4}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events := make(chan models.StreamEvent)
	err := pacer.Run(ctx, events, rec.emit)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.events)
}
