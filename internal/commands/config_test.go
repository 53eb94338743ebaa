package commands

import "testing"

func TestPatchFor(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{"voice on", "voice", "on", false},
		{"voice off", "voice", "off", false},
		{"voice junk", "voice", "maybe", true},
		{"speed", "voice-speed", "1.5", false},
		{"speed junk", "voice-speed", "fast", true},
		{"pitch", "voice-pitch", "0.8", false},
		{"endpoint", "endpoint", "https://api.example.org/analyze", false},
		{"haptics", "haptics", "off", false},
		{"unknown key", "volume", "11", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := patchFor(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("patchFor(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestPatchFor_Values(t *testing.T) {
	patch, err := patchFor("voice-speed", "1.5")
	if err != nil {
		t.Fatalf("patchFor failed: %v", err)
	}
	if patch.VoiceSpeed == nil || *patch.VoiceSpeed != 1.5 {
		t.Errorf("VoiceSpeed patch = %v", patch.VoiceSpeed)
	}
	if patch.VoiceEnabled != nil || patch.APIEndpoint != nil {
		t.Error("unrelated fields set in patch")
	}

	patch, err = patchFor("voice", "off")
	if err != nil {
		t.Fatalf("patchFor failed: %v", err)
	}
	if patch.VoiceEnabled == nil || *patch.VoiceEnabled {
		t.Errorf("VoiceEnabled patch = %v", patch.VoiceEnabled)
	}

	patch, err = patchFor("endpoint", "")
	if err != nil {
		t.Fatalf("patchFor failed: %v", err)
	}
	if patch.APIEndpoint == nil || *patch.APIEndpoint != "" {
		t.Error("clearing the endpoint should produce an empty-string patch")
	}
}

func TestParseOnOff(t *testing.T) {
	for _, v := range []string{"on", "true", "1"} {
		got, err := parseOnOff(v)
		if err != nil || !got {
			t.Errorf("parseOnOff(%q) = %v, %v", v, got, err)
		}
	}
	for _, v := range []string{"off", "false", "0"} {
		got, err := parseOnOff(v)
		if err != nil || got {
			t.Errorf("parseOnOff(%q) = %v, %v", v, got, err)
		}
	}
	if _, err := parseOnOff("yes"); err == nil {
		t.Error("expected error for unrecognized value")
	}
}
