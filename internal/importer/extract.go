package importer

import (
	"regexp"
	"strings"

	"github.com/welldanyogia/forwarding-admin-backend/internal/validator"
)

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// ExtractEmails finds every address in free text such as a chat export.
// Results are lowercased and distinct, in order of first appearance.
func ExtractEmails(text string) []string {
	matches := emailPattern.FindAllString(text, -1)
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		m = validator.NormalizeEmail(m)
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// OrgName is the first label of domain, e.g. "gauntletai" for "gauntletai.com"
func OrgName(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	name, _, _ := strings.Cut(domain, ".")
	return name
}

// FilterOrgEmails keeps addresses on domain or mentioning the organization name
func FilterOrgEmails(emails []string, domain string) []string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return append([]string(nil), emails...)
	}
	suffix := "@" + domain
	name := OrgName(domain)

	out := make([]string, 0, len(emails))
	for _, e := range emails {
		lower := strings.ToLower(e)
		if strings.HasSuffix(lower, suffix) || (name != "" && strings.Contains(lower, name)) {
			out = append(out, e)
		}
	}
	return out
}

// ExtractionCSV renders the Email,ForwardingEmail,Status sheet with every
// address inactive and without a forwarding target.
func ExtractionCSV(emails []string) string {
	lines := make([]string, 0, len(emails)+1)
	lines = append(lines, "Email,ForwardingEmail,Status")
	for _, e := range emails {
		lines = append(lines, e+",,INACTIVE")
	}
	return strings.Join(lines, "\n")
}
