package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/scenery/config"
)

func testLogConfig(t *testing.T) config.LogConfig {
	t.Helper()
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return config.LogConfig{
		Debug:   true,
		Dir:     filepath.Join(t.TempDir(), "logs"),
		File:    "scenery.log",
		MaxSize: 1024,
	}
}

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	cfg := testLogConfig(t)
	cfg.Debug = false

	logFile := setupLogging(cfg)
	if logFile != nil {
		t.Error("Expected nil log file when debug=false")
		logFile.Close()
	}

	if output := log.Writer(); output != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", output)
	}
	if _, err := os.Stat(cfg.Dir); !os.IsNotExist(err) {
		t.Error("Expected no log directory when debug=false")
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	cfg := testLogConfig(t)

	logFile := setupLogging(cfg)
	if logFile == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer logFile.Close()

	logPath := filepath.Join(cfg.Dir, cfg.File)
	log.Println("Test log message")

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	cfg := testLogConfig(t)

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}
	logPath := filepath.Join(cfg.Dir, cfg.File)
	if err := os.WriteFile(logPath, make([]byte, cfg.MaxSize+1), 0644); err != nil {
		t.Fatalf("Failed to write log file: %v", err)
	}

	logFile := setupLogging(cfg)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	entries, err := os.ReadDir(cfg.Dir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != cfg.File && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
			break
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > cfg.MaxSize {
		t.Errorf("Expected new log file to be smaller than %d bytes, got %d", cfg.MaxSize, info.Size())
	}
}

func TestSetupLogging_NoStdoutStderr(t *testing.T) {
	logFile := setupLogging(testLogConfig(t))
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	output := log.Writer()
	if output == os.Stdout {
		t.Error("Log output should not be stdout")
	}
	if output == os.Stderr {
		t.Error("Log output should not be stderr")
	}
}
