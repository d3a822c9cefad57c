package logging

import (
	"os"
	"path/filepath"
)

// DataDir returns the grounder data directory (~/.grounder).
// The GROUNDER_DATA_DIR environment variable overrides the default.
func DataDir() string {
	if dir := os.Getenv("GROUNDER_DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".grounder"
	}
	return filepath.Join(home, ".grounder")
}

// LogDir returns the directory where log files are written.
func LogDir() string {
	return filepath.Join(DataDir(), "logs")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(LogDir(), "grounder.log")
}

// EnsureLogDir creates the log directory if it does not exist.
func EnsureLogDir() error {
	return os.MkdirAll(LogDir(), 0o755)
}
