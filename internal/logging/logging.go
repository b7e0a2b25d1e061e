package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Logger is the public logger instance accessible from all packages.
// It discards until Initialize is called.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Options controls where and how verbosely pd logs
type Options struct {
	Debug       bool   // Lower the level to DEBUG and log to a per-run file
	DebugFile   string // Fixed debug log file (disables rotation)
	LogPath     string // Persistent INFO log used when debug is off
	MaxLogFiles int    // Per-run debug files to keep (0 = unlimited)
}

var logFile *os.File

// Initialize sets up Logger and returns the path of the file it writes to.
// An empty path means logs are discarded.
func Initialize(opts Options) (string, error) {
	if os.Getenv("PD_DEBUG") == "1" {
		opts.Debug = true
	}
	if env := os.Getenv("PD_DEBUG_FILE"); env != "" && opts.DebugFile == "" {
		opts.DebugFile = env
	}
	if env := os.Getenv("PD_MAX_LOG_FILES"); env != "" {
		if parsed, err := strconv.Atoi(env); err == nil {
			opts.MaxLogFiles = parsed
		}
	}

	level := slog.LevelInfo
	var path string

	switch {
	case opts.DebugFile != "":
		level = slog.LevelDebug
		path = opts.DebugFile
	case opts.Debug:
		level = slog.LevelDebug
		logDir := filepath.Join(filepath.Dir(opts.LogPath), "debug")
		if opts.LogPath == "" {
			dir, err := defaultLogDir()
			if err != nil {
				return "", fmt.Errorf("failed to get log directory: %w", err)
			}
			logDir = dir
		}
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create log directory: %w", err)
		}
		if opts.MaxLogFiles > 0 {
			if err := rotateLogs(logDir, opts.MaxLogFiles); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
			}
		}
		path = filepath.Join(logDir, uuid.New().String()+".log")
	case opts.LogPath != "":
		path = opts.LogPath
	default:
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return "", nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to open log file: %w", err)
	}

	Close()
	logFile = f
	Logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	Logger.Debug("Logging initialized", "log_file", path, "level", level.String())
	return path, nil
}

// IsDebug reports whether debug logging is enabled
func IsDebug() bool {
	return os.Getenv("PD_DEBUG") == "1"
}

// Close releases the current log file, if any, and discards further logs
func Close() {
	if logFile != nil {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		_ = logFile.Close()
		logFile = nil
	}
}

// rotateLogs removes old log files if there are more than maxLogFiles
func rotateLogs(logDir string, maxLogFiles int) error {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	type logFileInfo struct {
		modTime time.Time
		path    string
	}
	var logFiles []logFileInfo

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		logFiles = append(logFiles, logFileInfo{
			modTime: info.ModTime(),
			path:    filepath.Join(logDir, entry.Name()),
		})
	}

	if len(logFiles) < maxLogFiles {
		return nil
	}

	sort.Slice(logFiles, func(i, j int) bool {
		return logFiles[i].modTime.Before(logFiles[j].modTime)
	})

	// +1 makes room for the file about to be created
	numToDelete := len(logFiles) - maxLogFiles + 1
	for i := 0; i < numToDelete && i < len(logFiles); i++ {
		if err := os.Remove(logFiles[i].path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to delete old log file %s: %v\n", logFiles[i].path, err)
		}
	}

	return nil
}

func defaultLogDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".prime-directive", "logs", "debug"), nil
}
