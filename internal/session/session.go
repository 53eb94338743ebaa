// Package session coordinates one "ask" operation: record the user message,
// call the analysis client, record the assistant (or error) message, and
// expose the loading flag and error field the UI reads.
package session

import (
	"sync"

	"github.com/diogo/glassai/internal/api"
	apierrors "github.com/diogo/glassai/internal/errors"
	"github.com/diogo/glassai/internal/models"
	"github.com/diogo/glassai/internal/speech"
	"github.com/diogo/glassai/internal/store"
)

// ErrNoInputMessage is the user-facing error for an empty send.
const ErrNoInputMessage = "Please provide text or capture an image"

// Haptics is the haptic-feedback collaborator. The terminal host wires a
// no-op.
type Haptics interface {
	Impact()
}

// NoopHaptics does nothing.
type NoopHaptics struct{}

func (NoopHaptics) Impact() {}

// Session is the request orchestrator. It keeps no state of its own beyond
// the transient loading flag and last error.
//
// Overlapping SendMessage calls are serialized: a second caller blocks until
// the in-flight request completes, so messages always land in invocation
// order. There is no cancellation of an in-flight request.
type Session struct {
	conversations *store.ConversationStore
	settings      *store.SettingsStore
	analyzer      api.Analyzer
	speaker       speech.Speaker
	haptics       Haptics

	// endpointOverride, when set, wins over the configured setting for the
	// lifetime of this session (a per-invocation CLI flag).
	endpointOverride string

	sendMu sync.Mutex

	mu      sync.RWMutex
	loading bool
	lastErr string
}

// Option is a function that configures the session
type Option func(*Session)

// WithSpeaker sets the speech collaborator.
func WithSpeaker(s speech.Speaker) Option {
	return func(sess *Session) {
		sess.speaker = s
	}
}

// WithHaptics sets the haptics collaborator.
func WithHaptics(h Haptics) Option {
	return func(sess *Session) {
		sess.haptics = h
	}
}

// WithEndpointOverride pins the analysis endpoint for this session,
// overriding the persisted setting.
func WithEndpointOverride(endpoint string) Option {
	return func(sess *Session) {
		sess.endpointOverride = endpoint
	}
}

// New creates a session over the given stores and analyzer.
func New(conversations *store.ConversationStore, settings *store.SettingsStore, analyzer api.Analyzer, opts ...Option) *Session {
	s := &Session{
		conversations: conversations,
		settings:      settings,
		analyzer:      analyzer,
		speaker:       speech.Noop{},
		haptics:       NoopHaptics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendMessage runs one ask operation. At least one of text and image must be
// present; an empty send sets the error field and performs no conversation
// mutation and no analysis call.
//
// Analysis failures do not escape as conversation corruption: the failure is
// appended as an assistant message ("Error: <message>. Please try again."),
// recorded on the error field, and returned.
func (s *Session) SendMessage(text string, image *models.CapturedImage) (*models.AnalysisResponse, error) {
	if text == "" && image == nil {
		s.setErr(ErrNoInputMessage)
		return nil, apierrors.ErrNoInput
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	s.setLoading(true)
	s.conversations.SetProcessing(true)
	s.setErr("")
	defer func() {
		s.setLoading(false)
		s.conversations.SetProcessing(false)
	}()

	// The user message keeps only a truncated reference to the image; the
	// full payload goes to the analyzer.
	var thumbnail, payload string
	if image != nil {
		thumbnail = models.ThumbnailRef(image.Base64)
		payload = image.Base64
	}
	s.conversations.AddMessage(models.MessageUser, text, thumbnail)

	settings := s.settings.Get()
	endpoint := s.endpointOverride
	if endpoint == "" {
		endpoint = settings.APIEndpoint
	}
	if endpoint != "" {
		s.analyzer.SetEndpoint(endpoint)
	}

	req := models.AnalysisRequest{
		Text:  text,
		Image: payload,
	}
	if current := s.conversations.Current(); current != nil {
		req.SessionID = current.ID
	}

	resp, err := s.analyzer.Analyze(req)
	if err != nil {
		s.conversations.AddMessage(models.MessageAssistant, "Error: "+err.Error()+". Please try again.", "")
		s.setErr(err.Error())
		return nil, err
	}

	s.conversations.AddMessage(models.MessageAssistant, resp.Text, "")

	if settings.VoiceEnabled {
		s.speaker.Speak(resp.Text)
	}
	if settings.HapticEnabled {
		s.haptics.Impact()
	}

	return resp, nil
}

// IsLoading reports whether a request is in flight.
func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last user-facing error, or "".
func (s *Session) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ClearErr clears the error field.
func (s *Session) ClearErr() {
	s.setErr("")
}

func (s *Session) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

func (s *Session) setErr(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}
