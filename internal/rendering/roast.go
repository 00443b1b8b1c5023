package rendering

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-roaster/internal/types"
)

var (
	paragraphBreak  = regexp.MustCompile(`\n\n+`)
	headerMarker    = regexp.MustCompile(`^\*\*([^*]+)\*\*:`)
	emphasisMarker  = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	carriageReturns = strings.NewReplacer("\r\n", "\n")
)

// FormatRoast converts critique text into fragments, one per paragraph.
// A paragraph opening with **Title**: becomes a group of a heading and the remaining text.
func FormatRoast(rawText string) []types.Fragment {
	text := carriageReturns.Replace(rawText)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var fragments []types.Fragment
	for _, paragraph := range paragraphBreak.Split(text, -1) {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		fragments = append(fragments, formatParagraph(paragraph))
	}
	return fragments
}

func formatParagraph(paragraph string) types.Fragment {
	loc := headerMarker.FindStringSubmatchIndex(paragraph)
	if loc == nil {
		return types.Paragraph(ParseRuns(strings.TrimSpace(paragraph))...)
	}

	title := paragraph[loc[2]:loc[3]]
	children := []types.Fragment{types.Heading(title)}
	if rest := strings.TrimSpace(paragraph[loc[1]:]); rest != "" {
		children = append(children, types.Paragraph(ParseRuns(rest)...))
	}
	return types.Group(children...)
}

// ParseRuns splits text into plain and emphasized runs. Markers do not nest;
// matches are taken leftmost first without overlap, and an unpaired ** stays literal.
func ParseRuns(text string) []types.Run {
	matches := emphasisMarker.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		if text == "" {
			return nil
		}
		return []types.Run{{Text: text}}
	}

	runs := make([]types.Run, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			runs = append(runs, types.Run{Text: text[last:m[0]]})
		}
		runs = append(runs, types.Run{Text: text[m[2]:m[3]], Emphasis: true})
		last = m[1]
	}
	if last < len(text) {
		runs = append(runs, types.Run{Text: text[last:]})
	}
	return runs
}
