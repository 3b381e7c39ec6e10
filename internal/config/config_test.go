package config

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != ModeServer {
		t.Errorf("DefaultConfig() Mode = %v, want %v", cfg.Mode, ModeServer)
	}
	if cfg.Host != DefaultHost {
		t.Errorf("DefaultConfig() Host = %v, want %v", cfg.Host, DefaultHost)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("DefaultConfig() Port = %v, want %v", cfg.Port, DefaultPort)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("DefaultConfig() LogLevel = %v, want %v", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.MaxUploadSize != DefaultMaxUploadSize {
		t.Errorf("DefaultConfig() MaxUploadSize = %v, want %v", cfg.MaxUploadSize, DefaultMaxUploadSize)
	}
	if !strings.Contains(cfg.OfficeAddress, "THE PATENT OFFICE") {
		t.Errorf("DefaultConfig() OfficeAddress missing office header: %q", cfg.OfficeAddress)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
		errText string
	}{
		{
			name:    "valid default config",
			modify:  func(_ *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid mode",
			modify:  func(c *Config) { c.Mode = "daemon" },
			wantErr: true,
			errText: "mode must be",
		},
		{
			name:    "port too low in server mode",
			modify:  func(c *Config) { c.Port = 0 },
			wantErr: true,
			errText: "port must be",
		},
		{
			name:    "port too high in server mode",
			modify:  func(c *Config) { c.Port = 70000 },
			wantErr: true,
			errText: "port must be",
		},
		{
			name: "port ignored in stdio mode",
			modify: func(c *Config) {
				c.Mode = ModeStdio
				c.Port = 0
			},
			wantErr: false,
		},
		{
			name:    "zero max upload size",
			modify:  func(c *Config) { c.MaxUploadSize = 0 },
			wantErr: true,
			errText: "upload size",
		},
		{
			name:    "negative max upload size",
			modify:  func(c *Config) { c.MaxUploadSize = -1 },
			wantErr: true,
			errText: "upload size",
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: true,
			errText: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Validate() error = nil, want error containing %q", tt.errText)
				}
				if !strings.Contains(err.Error(), tt.errText) {
					t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.errText)
				}
			} else if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestConfig_Address(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "0.0.0.0"
	cfg.Port = 9000

	if got := cfg.Address(); got != "0.0.0.0:9000" {
		t.Errorf("Address() = %v, want 0.0.0.0:9000", got)
	}
}

func TestConfig_ModeHelpers(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.IsServerMode() || cfg.IsStdioMode() {
		t.Errorf("default config should report server mode")
	}

	cfg.Mode = ModeStdio
	if cfg.IsServerMode() || !cfg.IsStdioMode() {
		t.Errorf("stdio config should report stdio mode")
	}
}
