package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/prgate/schema"
)

// Color variables for console output.
var (
	ErrorColor = color.New(color.FgRed, color.Bold) // ErrorColor represents merge blockers.
	WarnColor  = color.New(color.FgYellow)          // WarnColor represents standard caution, not bold.
	InfoColor  = color.New(color.FgCyan)            // InfoColor represents informational signal.
	PassColor  = color.New(color.FgGreen, color.Bold)
)

// GetPlainLabel returns the upper-case label of a severity. This is the
// core logic used for table and text printing.
func GetPlainLabel(sev schema.Severity) string {
	switch sev {
	case schema.SeverityError:
		return "ERROR"
	case schema.SeverityWarn:
		return "WARN"
	default:
		return "INFO"
	}
}

// GetColorLabel returns a colored severity label for console output (table).
func GetColorLabel(sev schema.Severity) string {
	text := GetPlainLabel(sev)
	switch sev {
	case schema.SeverityError:
		return ErrorColor.Sprint(text)
	case schema.SeverityWarn:
		return WarnColor.Sprint(text)
	default:
		return InfoColor.Sprint(text)
	}
}

// GetBandLabel returns a colored risk band for console output.
func GetBandLabel(band schema.RiskBand) string {
	switch band {
	case schema.RiskHigh:
		return ErrorColor.Sprint(string(band))
	case schema.RiskMedium:
		return WarnColor.Sprint(string(band))
	default:
		return PassColor.Sprint(string(band))
	}
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path selects os.Stdout; otherwise parent directories are created.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	if dir := filepath.Dir(filePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}
	return os.Create(filePath)
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there is room for the prefix and at least one character.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
