// Package importer turns pasted text into candidate account addresses.
package importer

import (
	"strings"

	"github.com/welldanyogia/forwarding-admin-backend/internal/validator"
)

// maxRejectedText bounds the echo of a rejected line, the longest valid address
const maxRejectedText = 254

// Rejection is an input line that cannot become an account
type Rejection struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// Batch is the result of parsing one import paste
type Batch struct {
	// Lines is the number of input lines
	Lines int
	// Candidates are the distinct normalized addresses in first-seen order
	Candidates []string
	// Rejected are the blank or malformed lines
	Rejected []Rejection
	// Repeats counts valid lines whose address already appeared earlier
	Repeats int
}

// ParseCandidates splits raw on newlines (CRLF tolerated), trims each line
// and keeps the lines holding a valid address. Addresses are lowercased and
// deduplicated keeping the first occurrence. A single trailing newline does
// not count as an extra line.
func ParseCandidates(raw string) Batch {
	var b Batch
	if raw == "" {
		return b
	}

	raw = strings.TrimSuffix(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	lines := strings.Split(raw, "\n")
	b.Lines = len(lines)

	seen := make(map[string]struct{}, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			b.Rejected = append(b.Rejected, Rejection{Line: i + 1, Reason: "blank line"})
			continue
		case !strings.Contains(line, "@"):
			b.Rejected = append(b.Rejected, Rejection{Line: i + 1, Text: validator.SanitizeString(line, maxRejectedText), Reason: "missing @"})
			continue
		case validator.ValidateEmail(line) != nil:
			b.Rejected = append(b.Rejected, Rejection{Line: i + 1, Text: validator.SanitizeString(line, maxRejectedText), Reason: "invalid email address"})
			continue
		}

		email := validator.NormalizeEmail(line)
		if _, dup := seen[email]; dup {
			b.Repeats++
			continue
		}
		seen[email] = struct{}{}
		b.Candidates = append(b.Candidates, email)
	}
	return b
}
