// Package segment splits raw resume text into titled sections and a trailing contact block.
package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-roaster/internal/types"
)

// maxTitleLength is the exclusive upper bound on the trimmed length of a section header.
const maxTitleLength = 30

var namePattern = regexp.MustCompile(`\b[A-Z][a-z]+\s[A-Z][a-z]+\b`)

// Result is the output of Segment.
type Result struct {
	Sections []types.ResumeSection
	Contact  *types.ContactBlock
	RawText  string
}

// Warning returns a ParseWarning when neither a section nor a contact block was found.
// Callers should then display RawText as plain paragraphs.
func (r Result) Warning() *ParseWarning {
	if len(r.Sections) > 0 || r.Contact != nil {
		return nil
	}
	return &ParseWarning{Message: "no sections or contact details detected", Lines: len(splitLines(r.RawText))}
}

// Segment converts newline-delimited resume text into ordered sections and an optional contact block.
func Segment(rawText string) Result {
	result := Result{RawText: rawText}
	if rawText == "" {
		return result
	}

	lines := splitLines(rawText)
	lines, result.Contact = extractContact(lines)
	result.Sections = detectSections(lines)
	return result
}

func splitLines(rawText string) []string {
	if rawText == "" {
		return nil
	}
	lines := strings.Split(rawText, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// IsContactLine reports whether a line looks like contact content: an email,
// a phone number, or a "First Last" name.
func IsContactLine(line string) bool {
	return strings.Contains(line, "@") ||
		strings.Contains(line, "+") ||
		namePattern.MatchString(line)
}

// extractContact removes the run of trailing contact lines and returns the remaining lines.
// Scanning stops at the first line that does not qualify, blank lines included.
func extractContact(lines []string) ([]string, *types.ContactBlock) {
	cut := len(lines)
	for cut > 0 && IsContactLine(lines[cut-1]) {
		cut--
	}
	if cut == len(lines) {
		return lines, nil
	}

	contact := make([]string, len(lines)-cut)
	copy(contact, lines[cut:])
	return lines[:cut], &types.ContactBlock{Lines: contact}
}

// IsSectionHeader reports whether a raw line opens a new section.
func IsSectionHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
		return false
	}
	if utf8.RuneCountInString(trimmed) >= maxTitleLength {
		return false
	}
	if strings.Contains(trimmed, "|") || strings.Contains(trimmed, "-") {
		return false
	}
	return trimmed[0] < '0' || trimmed[0] > '9'
}

func detectSections(lines []string) []types.ResumeSection {
	var sections []types.ResumeSection
	var current *types.ResumeSection

	for _, line := range lines {
		if IsSectionHeader(line) {
			if current != nil {
				sections = append(sections, *current)
			}
			current = &types.ResumeSection{Title: strings.TrimSpace(line)}
			continue
		}
		if current != nil {
			current.ContentLines = append(current.ContentLines, strings.TrimSpace(line))
		}
	}

	// The last section is kept only when it accumulated content.
	if current != nil && len(current.ContentLines) > 0 {
		sections = append(sections, *current)
	}
	return sections
}
