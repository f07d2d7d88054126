package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFile(t *testing.T) {
	got := Load(filepath.Join(t.TempDir(), "nope.json"))
	if got != Default() {
		t.Errorf("missing file: got %+v, want defaults", got)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Load(path); got != Default() {
		t.Errorf("corrupt file: got %+v, want defaults", got)
	}
}

func TestLoad_WrongTypeFieldFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	doc := `{"language": "de", "font_size": "big", "high_contrast": 1, "webcam_size": "large"}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	got := Load(path)
	if got.Language != "de" {
		t.Errorf("language = %q, want de", got.Language)
	}
	if got.WebcamSize != "large" {
		t.Errorf("webcam_size = %q, want large", got.WebcamSize)
	}
	if got.FontSize != 14 {
		t.Errorf("mistyped font_size must fall back to default, got %d", got.FontSize)
	}
	if got.HighContrast != false {
		t.Error("mistyped high_contrast must fall back to default")
	}
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	want := Settings{Language: "de", WebcamSize: "large", HighContrast: true, FontSize: 18}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := Load(path); got != want {
		t.Errorf("roundtrip: got %+v, want %+v", got, want)
	}

	// No temp files may survive a successful save.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("settings dir holds %d entries, want only the document", len(entries))
	}
}

func TestSave_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := Save(path, Default()); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	want := Default()
	want.Language = "de"
	if err := Save(path, want); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if got := Load(path); got != want {
		t.Errorf("overwrite: got %+v, want %+v", got, want)
	}
}

func TestDefaultPath_EnvFile(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.json")
	t.Setenv("COINSCAN_SETTINGS", want)

	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}

func TestDefaultPath_EnvDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("COINSCAN_SETTINGS", dir)

	if got, want := DefaultPath(), filepath.Join(dir, FileName); got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}

func TestDefaultPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("COINSCAN_SETTINGS", "")
	t.Setenv("XDG_CONFIG_HOME", dir)

	want := filepath.Join(dir, "CoinScan", FileName)
	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}
