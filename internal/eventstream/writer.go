package eventstream

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// writes event frames, flushing each one so clients see fragments as they are produced
type Writer struct {
	w       io.Writer
	flusher http.Flusher
}

func NewWriter(w io.Writer) *Writer {
	flusher, _ := w.(http.Flusher)

	return &Writer{w: w, flusher: flusher}
}

// sets the headers a streaming response needs
func PrepareHeaders(h http.Header) {
	h.Set("Content-Type", ContentType)
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
}

func (w *Writer) WriteContent(content string) error {
	return w.writeFrame(Frame{Content: content})
}

func (w *Writer) WriteError(message string) error {
	return w.writeFrame(Frame{Error: message})
}

// writes the end-of-stream sentinel
func (w *Writer) WriteDone() error {
	return w.writeRaw(DoneSentinel)
}

func (w *Writer) writeFrame(frame Frame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("failed to marshal frame: %w", err)
	}

	return w.writeRaw(string(payload))
}

func (w *Writer) writeRaw(payload string) error {
	if _, err := fmt.Fprintf(w.w, "%s%s\n\n", DataPrefix, payload); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	if w.flusher != nil {
		w.flusher.Flush()
	}

	return nil
}
