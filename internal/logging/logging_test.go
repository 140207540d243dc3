package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"json debug", Config{Level: "debug", Format: "json"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewLoggerJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "otb.log")
	logger, err := NewLogger(Config{Level: "debug", Format: "json", OutputPath: path})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Debug("schematic loaded")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("Log line is not JSON: %v\n%s", err, data)
	}
	if entry["msg"] != "schematic loaded" || entry["level"] != "debug" {
		t.Errorf("Unexpected entry: %v", entry)
	}
}

func TestNewLoggerLevelFallback(t *testing.T) {
	logger, err := NewLogger(Config{Level: "nonsense", Format: "console"})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if logger.Core().Enabled(zap.DebugLevel) {
		t.Error("Fallback level must be info, debug is enabled")
	}
}

func TestNewDefaultLogger(t *testing.T) {
	if NewDefaultLogger() == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}
