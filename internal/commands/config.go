package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/diogo/glassai/internal/models"
	"github.com/diogo/glassai/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := openSettings()
		if err != nil {
			return err
		}

		cfg := settings.Get()
		endpoint := cfg.APIEndpoint
		if endpoint == "" {
			endpoint = "(mock responses)"
		}
		fmt.Printf("voice:       %v\n", cfg.VoiceEnabled)
		fmt.Printf("voice-speed: %.2f\n", cfg.VoiceSpeed)
		fmt.Printf("voice-pitch: %.2f\n", cfg.VoicePitch)
		fmt.Printf("endpoint:    %s\n", endpoint)
		fmt.Printf("haptics:     %v\n", cfg.HapticEnabled)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update one setting",
	Long: `Update one setting. Keys:

  voice        on|off     speak replies aloud
  voice-speed  0.5-2.0    speech rate multiplier
  voice-pitch  0.5-2.0    speech pitch multiplier
  endpoint     URL        analysis endpoint ("" for mock responses)
  haptics      on|off     haptic feedback`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := openSettings()
		if err != nil {
			return err
		}

		patch, err := patchFor(args[0], args[1])
		if err != nil {
			return err
		}
		settings.Update(patch)
		fmt.Printf("Set %s to %s\n", args[0], args[1])
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := openSettings()
		if err != nil {
			return err
		}
		settings.Reset()
		fmt.Println("Settings reset to defaults")
		return nil
	},
}

// patchFor builds the partial update for one key. Values are applied as
// supplied; out-of-range speeds and pitches are stored as-is.
func patchFor(key, value string) (models.SettingsPatch, error) {
	var patch models.SettingsPatch
	switch key {
	case "voice":
		b, err := parseOnOff(value)
		if err != nil {
			return patch, err
		}
		patch.VoiceEnabled = &b
	case "voice-speed":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return patch, fmt.Errorf("invalid voice-speed %q: %w", value, err)
		}
		patch.VoiceSpeed = &f
	case "voice-pitch":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return patch, fmt.Errorf("invalid voice-pitch %q: %w", value, err)
		}
		patch.VoicePitch = &f
	case "endpoint":
		patch.APIEndpoint = &value
	case "haptics":
		b, err := parseOnOff(value)
		if err != nil {
			return patch, err
		}
		patch.HapticEnabled = &b
	default:
		return patch, fmt.Errorf("unknown setting: %s", key)
	}
	return patch, nil
}

func parseOnOff(value string) (bool, error) {
	switch value {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", value)
}

func openSettings() (*store.SettingsStore, error) {
	kv, err := newKV()
	if err != nil {
		return nil, err
	}
	return store.NewSettingsStore(kv), nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configResetCmd)
}
