package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Defaults.Lang != "en" {
		t.Errorf("Default lang = %s, want en", cfg.Defaults.Lang)
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("Default format = %s, want text", cfg.Defaults.Format)
	}
	if cfg.Defaults.Provider != "youtube" {
		t.Errorf("Default provider = %s, want youtube", cfg.Defaults.Provider)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Default port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Resolver.Lenient {
		t.Errorf("Resolver should be strict by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_Save_Load(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Defaults.Lang = "fr"
	cfg.Defaults.Format = "srt"
	cfg.Server.Port = 8080

	err := cfg.Save(configPath)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Defaults.Lang != "fr" {
		t.Errorf("Loaded lang = %s, want fr", loaded.Defaults.Lang)
	}
	if loaded.Defaults.Format != "srt" {
		t.Errorf("Loaded format = %s, want srt", loaded.Defaults.Format)
	}
	if loaded.Server.Port != 8080 {
		t.Errorf("Loaded port = %d, want 8080", loaded.Server.Port)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Defaults.Lang != "en" {
		t.Errorf("Load() of missing file should return defaults")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "defaults: [unclosed"},
		{"unknown format", "defaults:\n  format: docx\n"},
		{"unknown provider", "defaults:\n  provider: vimeo\n"},
		{"bad timeout", "http:\n  timeout: soon\n"},
		{"bad port", "server:\n  port: 70000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("Load() should fail for %s", tt.name)
			}
		})
	}
}

func TestListenPort(t *testing.T) {
	cfg := DefaultConfig()

	t.Setenv(PortEnv, "")
	port, err := cfg.ListenPort()
	if err != nil || port != DefaultPort {
		t.Errorf("ListenPort() = %d, %v, want %d", port, err, DefaultPort)
	}

	cfg.Server.Port = 9000
	port, _ = cfg.ListenPort()
	if port != 9000 {
		t.Errorf("ListenPort() = %d, want config port 9000", port)
	}

	t.Setenv(PortEnv, "3000")
	port, err = cfg.ListenPort()
	if err != nil || port != 3000 {
		t.Errorf("ListenPort() = %d, %v, want PORT override 3000", port, err)
	}

	t.Setenv(PortEnv, "not-a-port")
	if _, err := cfg.ListenPort(); err == nil {
		t.Error("ListenPort() should reject a non-numeric PORT")
	}
}

func TestGetHTTPTimeout(t *testing.T) {
	cfg := DefaultConfig()
	d, err := cfg.GetHTTPTimeout()
	if err != nil || d != 60*time.Second {
		t.Errorf("GetHTTPTimeout() = %v, %v, want 60s", d, err)
	}

	cfg.HTTP.Timeout = ""
	if d, _ := cfg.GetHTTPTimeout(); d != 0 {
		t.Errorf("GetHTTPTimeout() with empty value = %v, want 0", d)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"text", "srt", "timestamps", "json"} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) error = %v", f, err)
		}
	}
	if err := ValidateFormat("vtt"); err == nil {
		t.Error("ValidateFormat(vtt) should fail")
	}
}

func TestAppDir(t *testing.T) {
	dir := AppDir()
	if dir == "" {
		t.Error("AppDir() returned empty string")
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".youtran")
	if dir != expected {
		t.Errorf("AppDir() = %s, want %s", dir, expected)
	}
}
