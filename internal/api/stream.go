package api

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// StreamHandlers receives the named events of one install stream. Handlers
// are invoked sequentially in delivery order from a single goroutine. Nil
// handlers are skipped. Error is called only when the channel drops without
// a done event; a done event is always the last callback.
type StreamHandlers struct {
	Start    func()
	Progress func(progress float64)
	Log      func(line string)
	Truncate func(limit int)
	Done     func(result InstallResult)
	Error    func(err error)
}

// InstallStream opens the server-push event channel for one install attempt
// and dispatches its events to the handlers. It returns a cancel function
// that stops event delivery and releases the connection; cancelling after
// the stream has ended is a no-op.
func (c *Client) InstallStream(ctx context.Context, id int, h StreamHandlers) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)

	// Cache-busting parameter, matching what browsers need to avoid a
	// stale cached stream response.
	url := fmt.Sprintf("%s/api/install/%d/stream?ts=%d", c.baseURL, id, time.Now().UnixMilli())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("opening install stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		cancel()
		return nil, decodeError(resp)
	}

	go func() {
		defer cancel()
		defer resp.Body.Close()

		var event string
		var data strings.Builder
		done := false

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 256*1024)
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case line == "":
				if event != "" {
					done = dispatchEvent(h, event, data.String())
				}
				event = ""
				data.Reset()
				if done {
					return
				}
			case strings.HasPrefix(line, "event:"):
				event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
			}
		}

		// The channel closed without a terminal event. Cancellation is
		// the caller's own doing and not reported as a failure.
		if ctx.Err() != nil {
			return
		}
		err := scanner.Err()
		if err == nil {
			err = fmt.Errorf("install stream closed before completion")
		}
		if h.Error != nil {
			h.Error(err)
		}
	}()

	return cancel, nil
}

// dispatchEvent routes one named event to its handler. It reports whether
// the event was terminal.
func dispatchEvent(h StreamHandlers, event, data string) bool {
	switch event {
	case "start":
		if h.Start != nil {
			h.Start()
		}
	case "progress":
		var payload struct {
			Progress *float64 `json:"progress"`
		}
		// Non-numeric or absent progress values are ignored.
		if json.Unmarshal([]byte(data), &payload) == nil && payload.Progress != nil && h.Progress != nil {
			h.Progress(*payload.Progress)
		}
	case "log":
		var payload struct {
			Line string `json:"line"`
		}
		if json.Unmarshal([]byte(data), &payload) == nil && payload.Line != "" && h.Log != nil {
			h.Log(payload.Line)
		}
	case "truncate":
		var payload struct {
			Limit int `json:"limit"`
		}
		if json.Unmarshal([]byte(data), &payload) == nil && h.Truncate != nil {
			h.Truncate(payload.Limit)
		}
	case "done":
		var result InstallResult
		json.Unmarshal([]byte(data), &result)
		if result.Status == "" {
			result.Status = StatusError
		}
		if h.Done != nil {
			h.Done(result)
		}
		return true
	}
	return false
}
