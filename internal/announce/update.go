package announce

import (
	"fmt"
	"os"
	"strings"
)

// UpdateMetadata rewrites the announcement_message field of a
// metadata.yaml in place, preserving every other line, comment and
// indentation. When the field is absent it is appended at the end.
//
// The file is rewritten line-by-line instead of re-marshaling the YAML
// because authors keep comments and deliberate formatting in these
// documents.
func UpdateMetadata(path, announcement string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("announce: reading %s: %w", path, err)
	}

	quoted := fmt.Sprintf("announcement_message: %q", announcement)

	lines := strings.Split(string(data), "\n")
	updated := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "announcement_message:") {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			lines[i] = indent + quoted
			updated = true
			break
		}
	}

	if !updated {
		// Append after the last non-empty line.
		last := len(lines) - 1
		for last >= 0 && strings.TrimSpace(lines[last]) == "" {
			last--
		}
		lines = append(lines[:last+1], quoted, "")
	}

	out := strings.Join(lines, "\n")
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	return os.WriteFile(path, []byte(out), 0644)
}
