package textproc

import (
	"regexp"
	"strings"
)

// Extraction artifact patterns. Line-dropping patterns consume the
// trailing newline so repeated cleaning cannot re-collapse the result;
// CleanDocumentText must stay idempotent.
var (
	crlfRe        = regexp.MustCompile(`\r\n?`)
	pageNumLineRe = regexp.MustCompile(`(?m)^[ \t]*\d+[ \t]*$\n?`)
	footerLineRe  = regexp.MustCompile(`(?m)^[ \t]*[-–—][ \t]*\d+[ \t]*[-–—][ \t]*$\n?`)
	emailLineRe   = regexp.MustCompile(`(?m)^[ \t]*[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}[ \t]*$\n?`)
	urlLineRe     = regexp.MustCompile(`(?m)^[ \t]*https?://\S+[ \t]*$\n?`)
	spaceRunRe    = regexp.MustCompile(`[ \t]{2,}`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
)

// redactedToken replaces every match of a type's clean patterns.
const redactedToken = "[REDACTED]"

// cleanArtifacts strips generic PDF extraction debris: stray page
// numbers, dash-wrapped footers, header-ish email/URL lines, whitespace
// runs and excessive blank lines. Line endings are normalized to "\n".
func cleanArtifacts(text string) string {
	cleaned := crlfRe.ReplaceAllString(text, "\n")
	cleaned = pageNumLineRe.ReplaceAllString(cleaned, "")
	cleaned = footerLineRe.ReplaceAllString(cleaned, "")
	cleaned = emailLineRe.ReplaceAllString(cleaned, "")
	cleaned = urlLineRe.ReplaceAllString(cleaned, "")
	cleaned = spaceRunRe.ReplaceAllString(cleaned, " ")
	cleaned = blankRunRe.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}

// CleanDocumentText applies the generic artifact removal and then the
// document type's redaction patterns, substituting "[REDACTED]" for every
// match. Generic cleaning runs first so type patterns see normalized
// whitespace. Idempotent: cleaning already-clean text is a no-op.
func CleanDocumentText(text string, docType DocumentType) string {
	cleaned := cleanArtifacts(text)
	for _, p := range TypeConfig(docType).CleanPatterns {
		cleaned = p.ReplaceAllString(cleaned, redactedToken)
	}
	return cleaned
}
