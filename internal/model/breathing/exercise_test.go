package breathing

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSeedIsValid(t *testing.T) {
	for _, ex := range Seed() {
		if err := ex.Validate(); err != nil {
			t.Fatalf("seed exercise invalid: %v", err)
		}
	}
	if got := Seed()[0].NominalSeconds(); got != 16 {
		t.Fatalf("expected box breathing cycle of 16s, got %v", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breathing.yaml")
	content := []byte(`exercises:
  - name: Quick Calm
    instructions: Breathe in and out.
    steps: [In, Out]
    stepDurations: [2, 3]
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile err: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Quick Calm" || got[0].StepDurations[1] != 3 {
		t.Fatalf("unexpected catalog: %+v", got)
	}
}

func TestLoadFileRejectsMismatchedDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breathing.yaml")
	content := []byte(`exercises:
  - name: Broken
    steps: [In, Out]
    stepDurations: [2]
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected validation error")
	}
}
