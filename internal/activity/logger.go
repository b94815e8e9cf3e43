package activity

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger appends user activity lines to one file per user. Appends are
// serialized with a mutex; this is the only in-process shared state.
type Logger struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Logger{dir: dir}, nil
}

var defaultLogger *Logger

// Init sets up the process-wide logger. Record is a no-op before Init.
func Init(dir string) {
	l, err := New(dir)
	if err != nil {
		log.Println("Activity logging disabled:", err)
		return
	}
	defaultLogger = l
}

func Record(userID, activity, details string) {
	if defaultLogger != nil {
		defaultLogger.Record(userID, activity, details)
	}
}

func FilePath(userID string) (string, error) {
	if defaultLogger == nil {
		return "", fmt.Errorf("activity logging disabled")
	}
	return defaultLogger.EnsureFile(userID)
}

// Record appends one timestamped line. Logging failures are swallowed;
// activity logging must never fail a request.
func (l *Logger) Record(userID, activity, details string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.ensureFile(userID)
	if err != nil {
		log.Println("Error logging activity:", err)
		return
	}

	f, err := os.OpenFile(p, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Println("Error logging activity:", err)
		return
	}
	defer f.Close()

	line := fmt.Sprintf("%s - %s", time.Now().Format("2006-01-02 15:04:05"), activity)
	if details != "" {
		line += " - " + details
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		log.Println("Error logging activity:", err)
	}
}

// EnsureFile returns the user's log file path, creating an empty log with
// a header when none exists yet.
func (l *Logger) EnsureFile(userID string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ensureFile(userID)
}

// ensureFile is EnsureFile without the lock. Every write path goes through
// it so the file always starts with the header.
func (l *Logger) ensureFile(userID string) (string, error) {
	p := l.path(userID)
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}
	header := fmt.Sprintf("Activity log for user ID: %s\n==============================================\n\n", userID)
	if err := os.WriteFile(p, []byte(header), 0o644); err != nil {
		return "", err
	}
	return p, nil
}

func (l *Logger) path(userID string) string {
	return filepath.Join(l.dir, userID+"_log.txt")
}
