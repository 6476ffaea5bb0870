package contactclient

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/validation"
)

// State is the orchestrator's submission lifecycle position.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// DefaultAutoClear is how long a terminal state stays displayed before the
// orchestrator returns to idle.
const DefaultAutoClear = 10 * time.Second

var (
	// ErrSubmissionInFlight is returned when Submit is called while a
	// previous submission is still running; the submit control is expected
	// to be disabled during that window.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")

	// ErrNoFallback is returned when the mailto fallback is invoked outside
	// a failed state.
	ErrNoFallback = errors.New("fallback is not available")
)

// User-facing notification texts.
const (
	textLoading        = "Sending your message..."
	textSuccess        = "Message sent successfully! I'll get back to you soon."
	textInvalid        = "Please fix the highlighted fields and try again."
	textAPIUnavailable = "The contact API is not running. Start the backend locally or use the email button below."
	textConfigIssue    = "The email service is not configured yet. Please use the email button below to reach me directly."
	textUnavailable    = "The contact service is temporarily unavailable. Please use the email button below to reach me directly."
)

// OrchestratorConfig wires the orchestrator's collaborators.
type OrchestratorConfig struct {
	Client   *Client
	Notifier Notifier
	// FallbackAddress is the inbox the mailto fallback is addressed to.
	FallbackAddress string
	// AutoClear overrides the 10s status auto-clear window (tests).
	AutoClear time.Duration
	// OnMessageSent fires after a delivered submission and after a fallback
	// navigation (a decorative progress tracker consumes it).
	OnMessageSent func()
	// OnFormReset fires when the form fields should be emptied.
	OnFormReset func()
	// OpenURL navigates to the mailto URI. No delivery confirmation is
	// possible, so its outcome is ignored.
	OpenURL func(uri string) error
}

// Orchestrator drives one contact form: validation, submission, status
// display and the manual mailto fallback. It never retries the network call
// automatically; the fallback is the only recovery path.
type Orchestrator struct {
	cfg      OrchestratorConfig
	notifier Notifier

	mu                sync.Mutex
	state             State
	fieldErrors       map[string]string
	fallbackAvailable bool
	retained          *domain.ContactRequest
	retainedDetailed  bool
	lastResult        *domain.DeliveryResult
	loading           Handle
	loadingShown      bool

	// clearGen guards against a stale auto-clear timer wiping the state of
	// a newer submission.
	clearGen   int
	clearTimer *time.Timer
}

// NewOrchestrator creates an orchestrator in the idle state.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	if cfg.AutoClear <= 0 {
		cfg.AutoClear = DefaultAutoClear
	}
	return &Orchestrator{
		cfg:      cfg,
		notifier: resolveNotifier(cfg.Notifier),
		state:    StateIdle,
	}
}

// State returns the current submission state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// FieldErrors returns the inline validation errors of the last attempt.
func (o *Orchestrator) FieldErrors() map[string]string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make(map[string]string, len(o.fieldErrors))
	for field, msg := range o.fieldErrors {
		out[field] = msg
	}
	return out
}

// FallbackAvailable reports whether the mailto fallback is currently offered.
func (o *Orchestrator) FallbackAvailable() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.fallbackAvailable
}

// Submit runs one submission attempt: validate, call the API, surface the
// outcome. Validation failures never reach the network. Returns
// ErrSubmissionInFlight while a previous attempt is still running.
func (o *Orchestrator) Submit(ctx context.Context, req *domain.ContactRequest, detailed bool) error {
	o.mu.Lock()
	if o.state == StateSubmitting {
		o.mu.Unlock()
		return ErrSubmissionInFlight
	}

	result := validation.ValidateContact(req, detailed)
	if !result.IsValid {
		// The pending auto-clear keeps running: a terminal status must
		// still leave the screen on schedule even when the retry was
		// invalid.
		o.fieldErrors = result.Errors
		o.mu.Unlock()
		o.safeNotify(func(n Notifier) { n.ShowError(textInvalid) })
		return nil
	}

	// A valid submission supersedes any pending auto-clear.
	o.cancelClearLocked()
	o.fieldErrors = nil
	o.state = StateSubmitting
	o.fallbackAvailable = false
	o.mu.Unlock()

	o.safeNotify(func(n Notifier) {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.loading = n.ShowLoading(textLoading)
		o.loadingShown = true
	})

	delivery, err := o.cfg.Client.SendContactEmail(ctx, req)

	o.dismissLoading()

	if err != nil {
		o.mu.Lock()
		o.state = StateFailed
		o.fallbackAvailable = true
		retained := *req
		o.retained = &retained
		o.retainedDetailed = detailed
		o.mu.Unlock()

		o.safeNotify(func(n Notifier) { n.ShowError(failureText(err)) })

		o.mu.Lock()
		o.scheduleClearLocked()
		o.mu.Unlock()
		return nil
	}

	o.mu.Lock()
	o.state = StateSucceeded
	o.retained = nil
	o.lastResult = delivery
	o.mu.Unlock()

	o.safeNotify(func(n Notifier) { n.ShowSuccess(textSuccess) })
	if o.cfg.OnFormReset != nil {
		o.cfg.OnFormReset()
	}
	if o.cfg.OnMessageSent != nil {
		o.cfg.OnMessageSent()
	}

	o.mu.Lock()
	o.scheduleClearLocked()
	o.mu.Unlock()
	return nil
}

// LastResult returns the delivery result of the most recent successful
// submission, or nil.
func (o *Orchestrator) LastResult() *domain.DeliveryResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastResult
}

// FallbackMailto regenerates the mail-client link from the retained payload
// and navigates to it. Repeated invocations after one failure produce the
// same URI; navigation counts as a sent message since no delivery
// confirmation is possible.
func (o *Orchestrator) FallbackMailto() (string, error) {
	o.mu.Lock()
	if !o.fallbackAvailable || o.retained == nil {
		o.mu.Unlock()
		return "", ErrNoFallback
	}
	uri := BuildMailtoLink(o.cfg.FallbackAddress, o.retained, o.retainedDetailed)
	o.mu.Unlock()

	if o.cfg.OpenURL != nil {
		_ = o.cfg.OpenURL(uri)
	}
	if o.cfg.OnMessageSent != nil {
		o.cfg.OnMessageSent()
	}
	return uri, nil
}

// failureText picks user guidance by the typed error kind.
func failureText(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case KindAPIUnavailable:
			return textAPIUnavailable
		case KindConfig:
			return textConfigIssue
		case KindValidation:
			return apiErr.Message
		}
	}
	return textUnavailable
}

func (o *Orchestrator) dismissLoading() {
	o.mu.Lock()
	shown := o.loadingShown
	handle := o.loading
	o.loadingShown = false
	o.mu.Unlock()
	if shown {
		o.safeNotify(func(n Notifier) { n.Dismiss(handle) })
	}
}

// cancelClearLocked stops a pending auto-clear timer. Callers hold o.mu.
func (o *Orchestrator) cancelClearLocked() {
	o.clearGen++
	if o.clearTimer != nil {
		o.clearTimer.Stop()
		o.clearTimer = nil
	}
}

// scheduleClearLocked arms the auto-clear timer for the current state.
// Callers hold o.mu.
func (o *Orchestrator) scheduleClearLocked() {
	o.clearGen++
	gen := o.clearGen
	o.clearTimer = time.AfterFunc(o.cfg.AutoClear, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if gen != o.clearGen {
			return // a newer submission owns the display
		}
		o.state = StateIdle
		o.fallbackAvailable = false
		o.retained = nil
		o.fieldErrors = nil
		o.clearTimer = nil
	})
}

// safeNotify shields state transitions from presenter panics.
func (o *Orchestrator) safeNotify(fn func(Notifier)) {
	defer func() { _ = recover() }()
	fn(o.notifier)
}
