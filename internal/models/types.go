// Package models defines the core data types shared across glassai.
package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageType identifies the author of a message.
type MessageType string

const (
	// MessageUser is a message authored by the user.
	MessageUser MessageType = "user"
	// MessageAssistant is a message authored by the assistant.
	MessageAssistant MessageType = "assistant"
)

// Message is a single turn in a conversation. Messages are created by the
// conversation store and never mutated afterwards.
type Message struct {
	ID   string      `json:"id"`
	Type MessageType `json:"type"`
	Text string      `json:"text,omitempty"`
	// Image holds a truncated base64 thumbnail reference, never the full
	// payload.
	Image     string    `json:"image,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is an ordered thread of messages with metadata.
type Conversation struct {
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// Preview is the most recent user text, truncated for history lists.
	Preview string `json:"preview,omitempty"`
}

// Settings holds the user preferences. A zero value is not meaningful; use
// DefaultSettings.
type Settings struct {
	VoiceEnabled  bool    `json:"voice_enabled"`
	VoiceSpeed    float64 `json:"voice_speed"`
	VoicePitch    float64 `json:"voice_pitch"`
	APIEndpoint   string  `json:"api_endpoint"`
	HapticEnabled bool    `json:"haptic_enabled"`
}

// DefaultSettings returns the default preference set.
func DefaultSettings() Settings {
	return Settings{
		VoiceEnabled:  true,
		VoiceSpeed:    1.0,
		VoicePitch:    1.0,
		APIEndpoint:   "",
		HapticEnabled: true,
	}
}

// SettingsPatch is a partial settings update. Nil fields are left unchanged.
// Values are applied as supplied; range validation is the caller's job.
type SettingsPatch struct {
	VoiceEnabled  *bool
	VoiceSpeed    *float64
	VoicePitch    *float64
	APIEndpoint   *string
	HapticEnabled *bool
}

// Apply merges the patch over s and returns the result.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.VoiceEnabled != nil {
		s.VoiceEnabled = *p.VoiceEnabled
	}
	if p.VoiceSpeed != nil {
		s.VoiceSpeed = *p.VoiceSpeed
	}
	if p.VoicePitch != nil {
		s.VoicePitch = *p.VoicePitch
	}
	if p.APIEndpoint != nil {
		s.APIEndpoint = *p.APIEndpoint
	}
	if p.HapticEnabled != nil {
		s.HapticEnabled = *p.HapticEnabled
	}
	return s
}

// CapturedImage is the shape handed over by the camera/image-picker
// collaborator. The core treats Base64 as an opaque payload.
type CapturedImage struct {
	URI    string `json:"uri"`
	Base64 string `json:"base64"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// AnalysisRequest is the body of a single analysis call.
type AnalysisRequest struct {
	Text      string `json:"text,omitempty"`
	Image     string `json:"image,omitempty"` // base64 encoded
	SessionID string `json:"sessionId,omitempty"`
}

// AnalysisResponse is the reply of an analysis call. Metadata is passed
// through verbatim; no schema is imposed beyond the text field.
type AnalysisResponse struct {
	Text       string         `json:"text"`
	Confidence float64        `json:"confidence,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// NewID returns a unique identifier for messages and conversations.
func NewID() string {
	return uuid.NewString()
}
