package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/patentdesk/fer-reply/internal/config"
)

func TestPrintVersion(t *testing.T) {
	originalStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	oldVersion, oldBuildTime, oldGitCommit := version, buildTime, gitCommit
	version = "1.2.3"
	buildTime = "2024-06-01_10:30:00"
	gitCommit = "abc123"
	defer func() {
		version, buildTime, gitCommit = oldVersion, oldBuildTime, oldGitCommit
		os.Stdout = originalStdout
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		printVersion()
		w.Close()
	}()

	var buf bytes.Buffer
	io.Copy(&buf, r)
	<-done

	output := buf.String()
	for _, expected := range []string{
		"FER Reply Server",
		"Version: 1.2.3",
		"Build Time: 2024-06-01_10:30:00",
		"Git Commit: abc123",
		"Built with:",
	} {
		if !strings.Contains(output, expected) {
			t.Errorf("printVersion() output missing %q\nactual:\n%s", expected, output)
		}
	}
}

func TestSetupLogging_Levels(t *testing.T) {
	originalDefault := slog.Default()
	defer slog.SetDefault(originalDefault)

	tests := []struct {
		name     string
		logLevel string
		debugOn  bool
	}{
		{"debug level enables debug", "debug", true},
		{"info level disables debug", "info", false},
		{"error level disables debug", "error", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Mode: config.ModeServer, LogLevel: tt.logLevel}
			log := setupLogging(cfg)
			if got := log.Enabled(context.Background(), slog.LevelDebug); got != tt.debugOn {
				t.Errorf("debug enabled = %v, want %v", got, tt.debugOn)
			}
		})
	}
}

func TestVersionFlagDetection(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		hasVersion bool
	}{
		{"no version flag", []string{"program"}, false},
		{"-version flag", []string{"program", "-version"}, true},
		{"--version flag", []string{"program", "--version"}, true},
		{"-v flag", []string{"program", "-v"}, true},
		{"mixed args", []string{"program", "--mode=server", "-version"}, true},
		{"similar but not version", []string{"program", "-verbose", "-versions"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := false
			for _, arg := range tt.args[1:] {
				if arg == "-version" || arg == "--version" || arg == "-v" {
					found = true
					break
				}
			}
			if found != tt.hasVersion {
				t.Errorf("version flag detection for %v: got %v, want %v", tt.args, found, tt.hasVersion)
			}
		})
	}
}
