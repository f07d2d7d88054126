// Package settings persists user preferences as a small JSON document.
//
// Loading is forgiving: a missing file, unreadable JSON, or a field of the
// wrong type all degrade to the defaults for the affected fields instead of
// failing the application. Saving is atomic via a temp file and rename.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// FileName is the settings document's base name.
const FileName = "coinscan_settings.json"

// Settings are the persisted user preferences.
type Settings struct {
	Language     string `json:"language"`
	WebcamSize   string `json:"webcam_size"`
	HighContrast bool   `json:"high_contrast"`
	FontSize     int    `json:"font_size"`
}

// Default returns the out-of-the-box preferences.
func Default() Settings {
	return Settings{
		Language:     "en",
		WebcamSize:   "small",
		HighContrast: false,
		FontSize:     14,
	}
}

// DefaultPath resolves where the settings document lives.
//
// COINSCAN_SETTINGS overrides the location entirely; when it names a
// directory the document goes inside it. Otherwise the platform config
// directory is used (APPDATA on Windows, XDG_CONFIG_HOME or ~/.config
// elsewhere) under a CoinScan subdirectory.
func DefaultPath() string {
	if env := os.Getenv("COINSCAN_SETTINGS"); env != "" {
		if info, err := os.Stat(env); err == nil && info.IsDir() {
			return filepath.Join(env, FileName)
		}
		return env
	}

	var base string
	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
	} else {
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			if home, err := os.UserHomeDir(); err == nil {
				base = filepath.Join(home, ".config")
			}
		}
	}
	if base == "" {
		return FileName
	}
	return filepath.Join(base, "CoinScan", FileName)
}

// Load reads the settings document at path. Every failure mode degrades to
// defaults: a missing or unreadable file yields Default() wholesale, and a
// field of the wrong JSON type yields that field's default while the rest
// of the document is honored.
func Load(path string) Settings {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Default()
	}

	s := Default()
	mergeString(doc, "language", &s.Language)
	mergeString(doc, "webcam_size", &s.WebcamSize)
	mergeBool(doc, "high_contrast", &s.HighContrast)
	mergeInt(doc, "font_size", &s.FontSize)
	return s
}

// Save writes the settings document atomically: the JSON is written to a
// temp file in the destination directory and renamed into place, so a crash
// mid-write never leaves a truncated document behind.
func Save(path string, s Settings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp settings file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}

func mergeString(doc map[string]json.RawMessage, key string, dst *string) {
	raw, ok := doc[key]
	if !ok {
		return
	}
	var v string
	if json.Unmarshal(raw, &v) == nil {
		*dst = v
	}
}

func mergeBool(doc map[string]json.RawMessage, key string, dst *bool) {
	raw, ok := doc[key]
	if !ok {
		return
	}
	var v bool
	if json.Unmarshal(raw, &v) == nil {
		*dst = v
	}
}

func mergeInt(doc map[string]json.RawMessage, key string, dst *int) {
	raw, ok := doc[key]
	if !ok {
		return
	}
	var v int
	if json.Unmarshal(raw, &v) == nil {
		*dst = v
	}
}
