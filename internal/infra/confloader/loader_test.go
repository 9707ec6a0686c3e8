package confloader

import (
	"os"
	"path/filepath"
	"testing"
)

type testSettings struct {
	Log struct {
		Level  string `koanf:"level"`
		Format string `koanf:"format"`
	} `koanf:"log"`
	Teardown struct {
		Timeout string `koanf:"timeout"`
	} `koanf:"teardown"`
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestNewLoader_WithOptions(t *testing.T) {
	l := NewLoader()
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}

	l = NewLoader(WithEnvPrefix("TEST_"), WithConfigFile("/path/to/settings.yaml"))
	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, "TEST_")
	}
	if l.filePath != "/path/to/settings.yaml" {
		t.Errorf("filePath = %q", l.filePath)
	}
}

func TestLoader_LoadFile_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "net.yaml", "settings:\n  provider: podman\n"},
		{"yml", "net.yml", "settings:\n  provider: podman\n"},
		{"json", "net.json", `{"settings": {"provider": "podman"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader()
			if err := l.LoadFile(writeFile(t, tt.file, tt.content)); err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			var net struct {
				Settings struct {
					Provider string `koanf:"provider"`
				} `koanf:"settings"`
			}
			if err := l.Unmarshal(&net); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if net.Settings.Provider != "podman" {
				t.Errorf("settings.provider = %q, want podman", net.Settings.Provider)
			}
		})
	}
}

func TestLoader_LoadFile_Errors(t *testing.T) {
	l := NewLoader()

	if err := l.LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") should not error, got: %v", err)
	}
	if err := l.LoadFile("/nonexistent/net.json"); err == nil {
		t.Error("LoadFile() should fail for a missing file")
	}
	if err := l.LoadFile(writeFile(t, "net.txt", "x")); err == nil {
		t.Error("LoadFile() should fail for an unknown extension")
	}
	if err := l.LoadFile(writeFile(t, "bad.json", "{not json")); err == nil {
		t.Error("LoadFile() should fail for malformed JSON")
	}
}

func TestLoader_LoadEnv(t *testing.T) {
	t.Setenv("ZOMBIE_LOG_LEVEL", "debug")
	t.Setenv("ZOMBIE_TEARDOWN_TIMEOUT", "45s")

	l := NewLoader()
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	var s testSettings
	if err := l.Unmarshal(&s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if s.Log.Level != "debug" {
		t.Errorf("log.level = %q, want debug", s.Log.Level)
	}
	if s.Teardown.Timeout != "45s" {
		t.Errorf("teardown.timeout = %q, want 45s", s.Teardown.Timeout)
	}
}

func TestLoader_Load_Priority(t *testing.T) {
	path := writeFile(t, "settings.yaml", "log:\n  level: warn\n  format: json\n")
	t.Setenv("ZOMBIE_LOG_LEVEL", "error")

	l := NewLoader(WithConfigFile(path))

	var s testSettings
	s.Teardown.Timeout = "30s"
	if err := l.Load(&s); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if s.Log.Level != "error" {
		t.Errorf("Level = %q, env should override file", s.Log.Level)
	}
	if s.Log.Format != "json" {
		t.Errorf("Format = %q, want json from file", s.Log.Format)
	}
	if s.Teardown.Timeout != "30s" {
		t.Errorf("Timeout = %q, default should survive", s.Teardown.Timeout)
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader(WithEnvPrefix(""))
	if err := l.LoadMap(map[string]any{
		"log.level":        "debug",
		"teardown.timeout": "5s",
	}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	var s testSettings
	if err := l.Load(&s); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Log.Level != "debug" || s.Teardown.Timeout != "5s" {
		t.Errorf("unexpected settings: %+v", s)
	}
}

func TestMapProvider_ReadBytes(t *testing.T) {
	if _, err := mapProvider(nil).ReadBytes(); err != ErrReadBytesNotSupported {
		t.Errorf("ReadBytes() error = %v", err)
	}
}
