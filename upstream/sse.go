package upstream

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"clarimed/models"
)

// parseSSE reads an SSE body incrementally and delivers decoded events on
// the returned channel in arrival order. The channel is closed when the
// stream ends, whatever the reason; a synthetic error event is emitted for
// a read failure so consumers see exactly one terminal event. Cancelling
// ctx aborts any pending delivery so the reader goroutine never outlives an
// abandoned consumer; closing the body unblocks the read side.
//
// The gin-contrib/sse decoder reads the whole body before returning, which
// is useless for a live stream, so the wire format is parsed here directly.
func parseSSE(ctx context.Context, body io.Reader) <-chan models.StreamEvent {
	events := make(chan models.StreamEvent)

	go func() {
		defer close(events)

		scanner := bufio.NewScanner(body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		var eventType string
		var data strings.Builder

		send := func(ev models.StreamEvent) bool {
			select {
			case events <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}

		flush := func() bool {
			if eventType == "" && data.Len() == 0 {
				return true
			}
			ev := models.StreamEvent{
				Type: models.StreamEventType(eventType),
				Data: json.RawMessage(data.String()),
			}
			eventType = ""
			data.Reset()
			return send(ev)
		}

		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case line == "":
				if !flush() {
					return
				}
			case strings.HasPrefix(line, "event:"):
				eventType = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				if data.Len() > 0 {
					data.WriteByte('\n')
				}
				data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
			case strings.HasPrefix(line, ":"):
				// comment / keep-alive
			}
		}
		if !flush() {
			return
		}

		if err := scanner.Err(); err != nil {
			payload, _ := json.Marshal(models.StreamErrorPayload{Detail: ErrConnection.Error()})
			send(models.StreamEvent{Type: models.StreamError, Data: payload})
		}
	}()

	return events
}
