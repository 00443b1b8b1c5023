// Package rendering turns segmented resume text and critique text into display fragments
// and renders those fragments as HTML or terminal text.
package rendering

import (
	"strings"

	"github.com/jonathan/resume-roaster/internal/types"
)

// tagListSections are the section titles whose lines are shown as comma-separated tags.
var tagListSections = map[string]bool{
	"Technical Skills": true,
	"Languages":        true,
	"Certificates":     true,
}

// lineRule maps one content line to a fragment. ok is false when the rule does not apply.
type lineRule struct {
	name  string
	apply func(line, sectionTitle string) (fragment types.Fragment, ok bool)
}

// sectionRules are evaluated top to bottom; the first rule that applies wins.
var sectionRules = []lineRule{
	{name: "table_row", apply: tableRowRule},
	{name: "bullet", apply: bulletRule},
	{name: "tag_list", apply: tagListRule},
	{name: "paragraph", apply: paragraphRule},
}

// RenderLine converts one section content line into a fragment.
// Empty lines produce no fragment.
func RenderLine(line, sectionTitle string) (types.Fragment, bool) {
	if strings.TrimSpace(line) == "" {
		return types.Fragment{}, false
	}
	for _, rule := range sectionRules {
		if fragment, ok := rule.apply(line, sectionTitle); ok {
			return fragment, true
		}
	}
	return types.Fragment{}, false
}

func tableRowRule(line, _ string) (types.Fragment, bool) {
	if !strings.Contains(line, "|") {
		return types.Fragment{}, false
	}
	parts := splitTrim(line, "|")
	return types.TableRow(parts[0], parts[1:]), true
}

func bulletRule(line, _ string) (types.Fragment, bool) {
	if rest, ok := strings.CutPrefix(line, "•"); ok {
		return types.Bullet(strings.TrimSpace(rest)), true
	}
	if startsWithLetter(line) && strings.HasSuffix(line, ".") {
		return types.Bullet(strings.TrimSpace(line)), true
	}
	return types.Fragment{}, false
}

func tagListRule(line, sectionTitle string) (types.Fragment, bool) {
	if !tagListSections[sectionTitle] {
		return types.Fragment{}, false
	}
	return types.TagList(splitTrim(line, ",")), true
}

func paragraphRule(line, _ string) (types.Fragment, bool) {
	text := strings.TrimSpace(line)
	if text == "" {
		return types.Fragment{}, false
	}
	return types.PlainParagraph(text), true
}

func startsWithLetter(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
