// Package speech provides the text-to-speech collaborator consumed by the
// orchestrator. The core only depends on the Speak/Stop pair.
package speech

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
)

// Speaker speaks assistant replies aloud. Speak returns immediately; a new
// utterance replaces any one still playing.
type Speaker interface {
	Speak(text string)
	Stop()
}

// Noop is a Speaker that does nothing.
type Noop struct{}

func (Noop) Speak(string) {}
func (Noop) Stop()        {}

// baseWordsPerMinute is the speaking rate that a voice speed of 1.0 maps to.
const baseWordsPerMinute = 175

// ExecSpeaker speaks through the platform TTS binary: `say` on macOS,
// `espeak`/`espeak-ng` elsewhere. Speed and pitch follow the user settings;
// values are clamped only where the binary's argument range demands it.
type ExecSpeaker struct {
	Speed float64
	Pitch float64

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewExecSpeaker creates a speaker with the given speed and pitch.
func NewExecSpeaker(speed, pitch float64) *ExecSpeaker {
	if speed <= 0 {
		speed = 1.0
	}
	if pitch <= 0 {
		pitch = 1.0
	}
	return &ExecSpeaker{Speed: speed, Pitch: pitch}
}

// Available reports whether a TTS binary can be found on this host.
func Available() bool {
	_, err := lookupBinary()
	return err == nil
}

func lookupBinary() (string, error) {
	if runtime.GOOS == "darwin" {
		return exec.LookPath("say")
	}
	if path, err := exec.LookPath("espeak-ng"); err == nil {
		return path, nil
	}
	return exec.LookPath("espeak")
}

// Speak starts the utterance in the background, replacing any one still
// playing. Failures are reported as warnings; speech is best-effort.
func (s *ExecSpeaker) Speak(text string) {
	if text == "" {
		return
	}

	bin, err := lookupBinary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: no text-to-speech binary found\n")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()

	cmd := exec.Command(bin, s.args(bin, text)...)
	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to start speech: %v\n", err)
		return
	}
	s.cmd = cmd
	go func() {
		_ = cmd.Wait()
	}()
}

// Stop kills the pending utterance, if any.
func (s *ExecSpeaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *ExecSpeaker) stopLocked() {
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	s.cmd = nil
}

// args builds the binary-specific argument list.
func (s *ExecSpeaker) args(bin string, text string) []string {
	rate := int(float64(baseWordsPerMinute) * s.Speed)
	if rate < 1 {
		rate = 1
	}
	if filepath.Base(bin) == "say" {
		// `say` has no pitch flag; speed maps to words per minute
		return []string{"-r", strconv.Itoa(rate), text}
	}
	// espeak pitch range is 0-99, 50 is the default voice
	pitch := int(50 * s.Pitch)
	if pitch < 0 {
		pitch = 0
	}
	if pitch > 99 {
		pitch = 99
	}
	return []string{"-s", strconv.Itoa(rate), "-p", strconv.Itoa(pitch), text}
}
