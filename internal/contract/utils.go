package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Severity label constants.
const (
	CriticalValue = "Critical" // severity rank 3
	HighValue     = "High"     // severity rank 2
	ElevatedValue = "Elevated" // severity rank 1
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // standard danger
	HighColor     = color.New(color.FgMagenta, color.Bold) // strong, distinct warning
	ElevatedColor = color.New(color.FgYellow)              // standard caution, not bold
)

// GetPlainLabel returns a plain text label for a risk flag severity rank.
// This is the core logic used for CSV, JSON and table printing.
func GetPlainLabel(severity int) string {
	switch {
	case severity >= 3:
		return CriticalValue
	case severity == 2:
		return HighValue
	default:
		return ElevatedValue
	}
}

// GetColorLabel returns a colored severity label for console table output.
func GetColorLabel(severity int) string {
	text := GetPlainLabel(severity)
	switch text {
	case CriticalValue:
		return CriticalColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	default:
		return ElevatedColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path selects stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// EnsureDir creates a directory (and parents) if it does not exist yet.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", path, err)
	}
	return nil
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
