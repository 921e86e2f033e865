package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/scenery/config"
)

// setupLogging routes the standard logger to a file when debug is on, and discards it otherwise
// The terminal owns stdout, so logs never go there
// An existing file over MaxSize is renamed with a timestamp before a fresh one is opened
func setupLogging(cfg config.LogConfig) *os.File {
	if !cfg.Debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(cfg.Dir, cfg.File)

	if info, err := os.Stat(logPath); err == nil && cfg.MaxSize > 0 && info.Size() > cfg.MaxSize {
		ext := filepath.Ext(cfg.File)
		base := cfg.File[:len(cfg.File)-len(ext)]
		rotated := filepath.Join(cfg.Dir, fmt.Sprintf("%s-%s%s", base, time.Now().Format("20060102-150405"), ext))
		if err := os.Rename(logPath, rotated); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to rotate log file: %v\n", err)
		}
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Printf("[host] logging to %s", logPath)
	return logFile
}
