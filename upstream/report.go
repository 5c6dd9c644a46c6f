package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"clarimed/models"
)

// ImproveStream is a live report-improvement stream. Events arrive in wire
// order on Events; Close releases the underlying connection and must be
// called exactly once by the consumer.
type ImproveStream struct {
	Events <-chan models.StreamEvent
	body   io.Closer
}

// Close terminates the stream. Safe to call after the events channel closed.
func (s *ImproveStream) Close() error {
	return s.body.Close()
}

// ImproveReport opens the streaming improvement request. The returned
// stream's channel is fed from a reader goroutine and closed at end of
// stream; cancelling ctx tears the connection down.
func (c *Client) ImproveReport(ctx context.Context, token string, reqBody models.ImproveRequest) (*ImproveStream, error) {
	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode improve request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/reports/improve", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+token)

	// No client timeout here: the stream is open-ended and bounded by ctx.
	streamClient := &http.Client{Transport: c.HTTPClient.Transport}
	resp, err := streamClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ErrConnection
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeAPIError(resp)
	}

	return &ImproveStream{
		Events: parseSSE(ctx, resp.Body),
		body:   resp.Body,
	}, nil
}

// Transcribe forwards a validated WAV recording to the upstream
// speech-to-text endpoint and returns the transcript.
func (c *Client) Transcribe(ctx context.Context, token, filename string, audio []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/transcribe", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", ErrConnection
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", decodeAPIError(resp)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}
	return out.Text, nil
}
