package report

import (
	"context"
	"encoding/json"
	"time"

	"clarimed/models"
	"clarimed/utils"

	"go.uber.org/zap"
)

// EmitFunc delivers one downstream SSE event to the browser. An error means
// the client connection is unusable and pacing must stop.
type EmitFunc func(event string, data interface{}) error

// Pacer drives the typewriter reveal. The zero configuration from
// NewPacer matches the product cadence: 4 characters every 25 ms.
type Pacer struct {
	Interval     time.Duration
	CharsPerTick int
}

func NewPacer() *Pacer {
	return &Pacer{
		Interval:     utils.StreamDrainInterval,
		CharsPerTick: utils.StreamCharsPerTick,
	}
}

// Run consumes upstream events in arrival order and emits paced downstream
// events until the stream finishes, fails, or ctx is cancelled. The drain
// ticker starts on the first ttft event (idempotently) and is stopped
// exactly once on every exit path.
//
// Downstream contract: `validation` and `ttft` are forwarded as-is, paced
// text arrives as `delta` fragments, `done` carries the authoritative final
// text after every buffered character has been flushed, and `error` carries
// the upstream failure while leaving already-revealed text standing.
func (p *Pacer) Run(ctx context.Context, events <-chan models.StreamEvent, emit EmitFunc) error {
	buffer := NewStreamBuffer()

	var ticker *time.Ticker
	var tick <-chan time.Time // nil until ttft; a nil channel never fires

	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tick = nil
		}
	}
	defer stopTicker()

	for {
		select {
		case <-ctx.Done():
			// Client went away; ignore whatever the upstream still sends.
			return ctx.Err()

		case <-tick:
			if revealed := buffer.Drain(p.CharsPerTick); revealed != "" {
				if err := emit("delta", models.DeltaPayload{Text: revealed}); err != nil {
					return err
				}
			}

		case ev, ok := <-events:
			if !ok {
				// Upstream closed without a terminal event. Flush what we
				// have so no characters are lost, then report the break.
				stopTicker()
				if remaining := buffer.FlushAll(); remaining != "" {
					if err := emit("delta", models.DeltaPayload{Text: remaining}); err != nil {
						return err
					}
				}
				return emit("error", models.StreamErrorPayload{Detail: "the stream ended unexpectedly"})
			}

			switch ev.Type {
			case models.StreamValidation:
				if err := emit("validation", json.RawMessage(ev.Data)); err != nil {
					return err
				}

			case models.StreamTTFT:
				if ticker == nil {
					ticker = time.NewTicker(p.Interval)
					tick = ticker.C
				}
				if err := emit("ttft", json.RawMessage(ev.Data)); err != nil {
					return err
				}

			case models.StreamDelta:
				var payload models.DeltaPayload
				if err := json.Unmarshal(ev.Data, &payload); err != nil {
					utils.GetLogger().Warn("Pacer: undecodable delta event", zap.Error(err))
					continue
				}
				buffer.Append(payload.Text)

			case models.StreamDone:
				stopTicker()
				if remaining := buffer.FlushAll(); remaining != "" {
					if err := emit("delta", models.DeltaPayload{Text: remaining}); err != nil {
						return err
					}
				}

				var payload models.DonePayload
				if err := json.Unmarshal(ev.Data, &payload); err != nil {
					utils.GetLogger().Warn("Pacer: undecodable done event", zap.Error(err))
				}
				// Reconcile with the server's authoritative text rather than
				// trusting local accumulation.
				if payload.Text == "" {
					payload.Text = buffer.Total()
				} else if payload.Text != buffer.Total() {
					utils.GetLogger().Warn("Pacer: accumulated text diverged from authoritative text",
						zap.Int("accumulated", len(buffer.Total())),
						zap.Int("authoritative", len(payload.Text)))
				}
				return emit("done", payload)

			case models.StreamError:
				stopTicker()
				var payload models.StreamErrorPayload
				if err := json.Unmarshal(ev.Data, &payload); err != nil || payload.Detail == "" {
					payload.Detail = "the improvement request failed, please try again"
				}
				// Partial text stays revealed; no rollback.
				return emit("error", payload)
			}
		}
	}
}
