package testrunner

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/zombienet-go/internal/core/domain"
)

const smokeTest = `Description: Small network smoke test
Network: ./small-network.json
Creds: config

# nodes
alice: is up
bob: is up within 30 seconds
`

func TestParse(t *testing.T) {
	def, err := Parse(strings.NewReader(smokeTest))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if def.Description != "Small network smoke test" {
		t.Errorf("Description = %q", def.Description)
	}
	if def.Network != "./small-network.json" || def.Creds != "config" {
		t.Errorf("Network/Creds = %q/%q", def.Network, def.Creds)
	}
	if len(def.Assertions) != 2 {
		t.Fatalf("len(Assertions) = %d, want 2", len(def.Assertions))
	}

	alice, bob := def.Assertions[0], def.Assertions[1]
	if alice.Node != "alice" || alice.Kind != AssertIsUp || alice.Timeout != DefaultAssertionTimeout {
		t.Errorf("alice = %+v", alice)
	}
	if bob.Node != "bob" || bob.Timeout != 30*time.Second || bob.Line != 7 {
		t.Errorf("bob = %+v", bob)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing network", "alice: is up\n", "missing Network"},
		{"unsupported", "Network: n.json\nalice: reports block height is at least 5\n", "line 2"},
		{"zero timeout", "Network: n.json\nalice: is up within 0 seconds\n", "invalid timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.zndsl")); !errors.Is(err, domain.ErrTestFile) {
		t.Errorf("ParseFile(missing) error = %v, want ErrTestFile", err)
	}

	path := filepath.Join(t.TempDir(), "smoke.zndsl")
	if err := os.WriteFile(path, []byte(smokeTest), 0644); err != nil {
		t.Fatal(err)
	}
	def, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if len(def.Assertions) != 2 {
		t.Errorf("len(Assertions) = %d", len(def.Assertions))
	}
}
