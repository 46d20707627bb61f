package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	constants "cryopush/config"
)

// Level represents log level
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
	LevelDebug   Level = "DEBUG"
)

// Logger writes timestamped entries to the cycle log file. The log never
// lives inside the instrument logs tree; it goes to the config directory.
type Logger struct {
	filePath string
	logFile  *os.File
	mu       sync.Mutex
}

// New creates a new logger instance writing to filePath. An empty path
// or an unopenable file degrades to stdout-only logging.
func New(filePath string) *Logger {
	logger := &Logger{filePath: filePath}

	if filePath != "" {
		logFile, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			logger.logFile = logFile
		}
	}

	return logger
}

// Default returns a logger writing under the user's config directory
func Default() *Logger {
	home, err := os.UserHomeDir()
	if err != nil {
		return New("")
	}
	dir := home + constants.CONFIG_DIR_NAME
	os.MkdirAll(dir, 0755)
	return New(filepath.Join(dir, constants.LOG_FILE_NAME))
}

func (l *Logger) write(level Level, message string, args ...interface{}) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	formattedMsg := fmt.Sprintf(message, args...)
	logEntry := fmt.Sprintf("[%s] %s: %s\n", timestamp, level, formattedMsg)

	if l.logFile != nil {
		l.mu.Lock()
		l.logFile.WriteString(logEntry)
		l.mu.Unlock()
	} else {
		fmt.Print(logEntry)
	}
}

// Close closes the log file
func (l *Logger) Close() {
	if l.logFile != nil {
		l.logFile.Close()
		l.logFile = nil
	}
}

// Info logs an informational message
func (l *Logger) Info(message string, args ...interface{}) {
	l.write(LevelInfo, message, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(message string, args ...interface{}) {
	l.write(LevelWarning, message, args...)
}

// Error logs an error message
func (l *Logger) Error(message string, args ...interface{}) {
	l.write(LevelError, message, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(message string, args ...interface{}) {
	l.write(LevelDebug, message, args...)
}

// Global logger instance for convenience
var defaultLogger = Default()

// Info logs an informational message using the default logger
func Info(message string, args ...interface{}) {
	defaultLogger.Info(message, args...)
}

// Warning logs a warning message using the default logger
func Warning(message string, args ...interface{}) {
	defaultLogger.Warning(message, args...)
}

// Error logs an error message using the default logger
func Error(message string, args ...interface{}) {
	defaultLogger.Error(message, args...)
}

// Debug logs a debug message using the default logger
func Debug(message string, args ...interface{}) {
	defaultLogger.Debug(message, args...)
}
