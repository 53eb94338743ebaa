package models

import "time"

// DefaultEndpoint is the placeholder endpoint shipped with the app. A client
// configured with this value (or with no endpoint at all) answers from the
// mock path instead of the network.
const DefaultEndpoint = "https://api.example.com/v1/analyze"

// RequestTimeout bounds a single live analysis call.
const RequestTimeout = 30 * time.Second

const (
	// PreviewMaxLen bounds the conversation preview snippet.
	PreviewMaxLen = 50
	// ThumbnailRefLen bounds the base64 prefix stored on a user message as
	// an image reference.
	ThumbnailRefLen = 100
)

// MockModelTag is reported in mock-path response metadata.
const MockModelTag = "mock-v1"
