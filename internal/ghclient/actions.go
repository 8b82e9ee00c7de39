package ghclient

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// WriteOutputs appends step outputs to the $GITHUB_OUTPUT file. It is a
// no-op outside GitHub Actions (empty path) or when there is nothing to write.
func WriteOutputs(path string, outputs map[string]string) error {
	if path == "" || len(outputs) == 0 {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open GITHUB_OUTPUT: %w", err)
	}
	defer func() { _ = f.Close() }()

	keys := make([]string, 0, len(outputs))
	for k := range outputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := writeOutput(f, k, outputs[k]); err != nil {
			return err
		}
	}
	return nil
}

// writeOutput uses the heredoc form for multi-line values.
func writeOutput(w io.Writer, key, value string) error {
	var err error
	if strings.ContainsAny(value, "\r\n") {
		delim := "ghadelimiter_" + uuid.NewString()
		_, err = fmt.Fprintf(w, "%s<<%s\n%s\n%s\n", key, delim, value, delim)
	} else {
		_, err = fmt.Fprintf(w, "%s=%s\n", key, value)
	}
	if err != nil {
		return fmt.Errorf("failed to write output %q: %w", key, err)
	}
	return nil
}

// ErrorAnnotation writes a workflow error command so the message shows on the run.
func ErrorAnnotation(w io.Writer, msg string) {
	escaped := strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(msg)
	_, _ = fmt.Fprintf(w, "::error::%s\n", escaped)
}

// InActions reports whether the process runs inside GitHub Actions.
func InActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}
