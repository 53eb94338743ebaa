package speech

import (
	"testing"
)

func TestExecSpeaker_Args(t *testing.T) {
	tests := []struct {
		name  string
		bin   string
		speed float64
		pitch float64
		want  []string
	}{
		{"say default rate", "/usr/bin/say", 1.0, 1.0, []string{"-r", "175", "hello"}},
		{"say faster", "/usr/bin/say", 2.0, 1.0, []string{"-r", "350", "hello"}},
		{"espeak default", "/usr/bin/espeak", 1.0, 1.0, []string{"-s", "175", "-p", "50", "hello"}},
		{"espeak-ng pitch", "/usr/bin/espeak-ng", 1.0, 1.5, []string{"-s", "175", "-p", "75", "hello"}},
		{"espeak pitch clamped high", "/usr/bin/espeak", 1.0, 5.0, []string{"-s", "175", "-p", "99", "hello"}},
		{"espeak slow", "/usr/bin/espeak", 0.5, 0.5, []string{"-s", "87", "-p", "25", "hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewExecSpeaker(tt.speed, tt.pitch)
			got := s.args(tt.bin, "hello")
			if len(got) != len(tt.want) {
				t.Fatalf("args = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("args = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestNewExecSpeaker_ZeroValuesFallBack(t *testing.T) {
	s := NewExecSpeaker(0, 0)
	if s.Speed != 1.0 || s.Pitch != 1.0 {
		t.Errorf("speed/pitch = %v/%v, want 1.0/1.0", s.Speed, s.Pitch)
	}

	s = NewExecSpeaker(-1, -1)
	if s.Speed != 1.0 || s.Pitch != 1.0 {
		t.Errorf("negative values not replaced: %v/%v", s.Speed, s.Pitch)
	}
}

func TestNoop(t *testing.T) {
	// Must be safe to call in any order
	var n Noop
	n.Speak("hello")
	n.Stop()
	n.Speak("")
}

func TestExecSpeaker_SpeakEmptyText(t *testing.T) {
	s := NewExecSpeaker(1.0, 1.0)
	// Must not spawn anything for empty text
	s.Speak("")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd != nil {
		t.Error("command spawned for empty text")
	}
}

func TestExecSpeaker_StopWithoutSpeak(t *testing.T) {
	s := NewExecSpeaker(1.0, 1.0)
	s.Stop() // must not panic
}
