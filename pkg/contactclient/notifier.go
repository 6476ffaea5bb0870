package contactclient

import (
	"sync"
	"time"
)

// Handle identifies one displayed notification.
type Handle int

// Notifier surfaces transient status messages to the user. Implementations
// are purely observational: a failure to render a notification must never
// affect the orchestrator's state transitions, so the orchestrator calls
// these behind a recover guard.
type Notifier interface {
	// ShowLoading displays a persistent notification until Dismiss is called.
	ShowLoading(text string) Handle
	// ShowSuccess displays a success notification (auto-expires).
	ShowSuccess(text string)
	// ShowError displays an error notification (auto-expires).
	ShowError(text string)
	// Dismiss removes a loading notification.
	Dismiss(handle Handle)
}

type noopNotifier struct{}

func (noopNotifier) ShowLoading(string) Handle { return 0 }
func (noopNotifier) ShowSuccess(string)        {}
func (noopNotifier) ShowError(string)          {}
func (noopNotifier) Dismiss(Handle)            {}

func resolveNotifier(notifier Notifier) Notifier {
	if notifier == nil {
		return noopNotifier{}
	}
	return notifier
}

// Notification kinds displayed by MemoryNotifier.
const (
	NoticeLoading = "loading"
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Default display durations. Loading has no auto-duration; it stays until
// dismissed.
const (
	SuccessDuration = 4 * time.Second
	ErrorDuration   = 5 * time.Second
)

// Notification is one entry in a MemoryNotifier.
type Notification struct {
	Handle Handle
	Kind   string
	Text   string
}

// MemoryNotifier is a thread-safe in-memory presenter. Notifications stack;
// each expires independently. It doubles as the test double for the
// orchestrator.
type MemoryNotifier struct {
	mu      sync.Mutex
	next    Handle
	active  []Notification
	history []Notification

	// Durations are overridable so tests do not sleep for seconds.
	SuccessFor time.Duration
	ErrorFor   time.Duration
}

// NewMemoryNotifier creates a presenter with the default durations.
func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{
		SuccessFor: SuccessDuration,
		ErrorFor:   ErrorDuration,
	}
}

func (n *MemoryNotifier) ShowLoading(text string) Handle {
	return n.add(NoticeLoading, text, 0)
}

func (n *MemoryNotifier) ShowSuccess(text string) {
	n.add(NoticeSuccess, text, n.SuccessFor)
}

func (n *MemoryNotifier) ShowError(text string) {
	n.add(NoticeError, text, n.ErrorFor)
}

func (n *MemoryNotifier) Dismiss(handle Handle) {
	n.remove(handle)
}

// Active returns the currently displayed notifications.
func (n *MemoryNotifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.active))
	copy(out, n.active)
	return out
}

// History returns every notification ever shown, in order.
func (n *MemoryNotifier) History() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.history))
	copy(out, n.history)
	return out
}

func (n *MemoryNotifier) add(kind, text string, expiry time.Duration) Handle {
	n.mu.Lock()
	n.next++
	handle := n.next
	notice := Notification{Handle: handle, Kind: kind, Text: text}
	n.active = append(n.active, notice)
	n.history = append(n.history, notice)
	n.mu.Unlock()

	if expiry > 0 {
		time.AfterFunc(expiry, func() { n.remove(handle) })
	}
	return handle
}

func (n *MemoryNotifier) remove(handle Handle) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, notice := range n.active {
		if notice.Handle == handle {
			n.active = append(n.active[:i], n.active[i+1:]...)
			return
		}
	}
}
