package translator

import "codeberg.org/pyscribe/server/pyscribe/conversations"

// a saved exchange as returned by the backend
type Entry = conversations.Conversation

type NotificationKind int

const (
	NotifyValidation NotificationKind = iota
	NotifyTransport
	NotifyUpstream
	NotifyPersistence
)

const (
	titleInputRequired     = "Input Required"
	titleTranslationFailed = "Translation Failed"
	titleSaveFailed        = "Save Failed"
	titleDeleteFailed      = "Delete Failed"
)

type Notification struct {
	Kind    NotificationKind
	Title   string
	Message string
}

// everything a UI needs to render the translator
type State struct {
	Prompt         string
	Output         string
	Streaming      bool
	History        []Entry // most recent first
	HistoryOpen    bool
	CurrentExample string
}

// receives state changes and notifications; called outside the controller lock
type Listener interface {
	StateChanged(state State)
	Notified(n Notification)
}

// adapts plain functions to Listener; nil fields are skipped
type ListenerFuncs struct {
	OnState  func(State)
	OnNotify func(Notification)
}

func (l ListenerFuncs) StateChanged(state State) {
	if l.OnState != nil {
		l.OnState(state)
	}
}

func (l ListenerFuncs) Notified(n Notification) {
	if l.OnNotify != nil {
		l.OnNotify(n)
	}
}

// outcome of one Submit
type Result struct {
	Output    string
	Cancelled bool
	Saved     *Entry // nil unless the exchange was persisted
}
