package models

import "encoding/json"

// StreamEventType enumerates the upstream report-improvement SSE events.
type StreamEventType string

const (
	StreamValidation StreamEventType = "validation"
	StreamTTFT       StreamEventType = "ttft"
	StreamDelta      StreamEventType = "delta"
	StreamDone       StreamEventType = "done"
	StreamError      StreamEventType = "error"
)

// StreamEvent is one decoded upstream SSE event.
type StreamEvent struct {
	Type StreamEventType
	Data json.RawMessage
}

// DeltaPayload carries one incremental text fragment.
type DeltaPayload struct {
	Text string `json:"text"`
}

// DonePayload carries the authoritative final text plus metrics.
type DonePayload struct {
	Text       string          `json:"text"`
	Metrics    json.RawMessage `json:"metrics,omitempty"`
	Validation json.RawMessage `json:"validation,omitempty"`
}

// StreamErrorPayload is the upstream error event body.
type StreamErrorPayload struct {
	Detail string `json:"detail"`
}

// ImproveRequest is the report-improvement request the browser submits.
type ImproveRequest struct {
	ReportText string `json:"report_text" binding:"required"`
	Language   string `json:"language,omitempty"`
}
