package eventstream

const (
	// every event line starts with this prefix
	DataPrefix = "data: "

	// payload that terminates the stream
	DoneSentinel = "[DONE]"

	// media type of translate responses
	ContentType = "text/event-stream"
)

// payload carried by a single event line
type Frame struct {
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// what the decoder extracted from one data line
type Event struct {
	Content    string
	HasContent bool
	Error      string
	HasError   bool
	Done       bool
}
