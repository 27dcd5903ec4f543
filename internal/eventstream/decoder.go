package eventstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// longest line the decoder buffers while waiting for its newline
const DefaultMaxLineSize = 1 << 20

// reported to the parse-failure hook when a line outgrows the buffer; the line is dropped
var ErrLineTooLong = errors.New("event line exceeds maximum size")

// called for every data line whose payload is not valid JSON
type ParseFailureHook func(line string, err error)

type DecoderOption func(*Decoder)

// installs a hook observing skipped lines
func WithParseFailureHook(hook ParseFailureHook) DecoderOption {
	return func(d *Decoder) {
		d.onParseFailure = hook
	}
}

// overrides DefaultMaxLineSize
func WithMaxLineSize(n int) DecoderOption {
	return func(d *Decoder) {
		if n > 0 {
			d.maxLine = n
		}
	}
}

// turns raw response chunks into events.
// chunks may end mid-line; the remainder is held until the next chunk completes it
type Decoder struct {
	pending        []byte
	discarding     bool // inside an oversized line, skipping to its newline
	done           bool
	maxLine        int
	onParseFailure ParseFailureHook
}

func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{maxLine: DefaultMaxLineSize}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// reports whether the sentinel has been seen
func (d *Decoder) Done() bool {
	return d.done
}

// consumes one raw chunk and returns the events of every complete line in it
func (d *Decoder) Feed(chunk []byte) []Event {
	if d.done {
		return nil
	}

	d.pending = append(d.pending, chunk...)

	var events []Event

	for !d.done {
		idx := bytes.IndexByte(d.pending, '\n')
		if idx < 0 {
			break
		}

		line := string(d.pending[:idx])
		d.pending = d.pending[idx+1:]

		if d.discarding {
			d.discarding = false
			continue
		}

		if ev, ok := d.decodeLine(line); ok {
			events = append(events, ev)
		}
	}

	if d.done {
		d.pending = nil
		return events
	}

	if len(d.pending) > d.maxLine {
		if !d.discarding {
			d.reportFailure(string(d.pending[:min(len(d.pending), 64)]), ErrLineTooLong)
		}

		d.pending = nil
		d.discarding = true
	}

	return events
}

// decodes a final line left without a trailing newline when the body ends
func (d *Decoder) Flush() []Event {
	if d.done || d.discarding || len(d.pending) == 0 {
		return nil
	}

	line := string(d.pending)
	d.pending = nil

	if ev, ok := d.decodeLine(line); ok {
		return []Event{ev}
	}

	return nil
}

func (d *Decoder) decodeLine(line string) (Event, bool) {
	line = strings.TrimSuffix(line, "\r")

	if !strings.HasPrefix(line, DataPrefix) {
		return Event{}, false
	}

	payload := strings.TrimPrefix(line, DataPrefix)

	if strings.TrimSpace(payload) == DoneSentinel {
		d.done = true
		return Event{Done: true}, true
	}

	var raw struct {
		Content *string `json:"content"`
		Error   *string `json:"error"`
	}

	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		d.reportFailure(line, fmt.Errorf("invalid event payload: %w", err))
		return Event{}, false
	}

	if raw.Content == nil && raw.Error == nil {
		return Event{}, false
	}

	var ev Event
	if raw.Content != nil {
		ev.Content = *raw.Content
		ev.HasContent = true
	}

	if raw.Error != nil {
		ev.Error = *raw.Error
		ev.HasError = true
	}

	return ev, true
}

func (d *Decoder) reportFailure(line string, err error) {
	if d.onParseFailure != nil {
		d.onParseFailure(line, err)
	}
}
