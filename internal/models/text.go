package models

import (
	"fmt"
	"time"
)

// TruncateText shortens text to at most maxLen runes, replacing the tail with
// "..." when it is cut.
func TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// ThumbnailRef returns the truncated reference kept on a user message for an
// attached image. It is a raw prefix of the encoded payload, not a renderable
// image.
func ThumbnailRef(base64 string) string {
	if len(base64) <= ThumbnailRefLen {
		return base64
	}
	return base64[:ThumbnailRefLen]
}

// FormatTimestamp renders t relative to now for history lists.
func FormatTimestamp(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02")
}
