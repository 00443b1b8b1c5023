package rendering

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-roaster/internal/types"
)

const (
	// panelWidth is the width of a panel title box and the wrap column for its content
	panelWidth = 72

	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// Printer writes fragments to a terminal.
type Printer struct {
	out   io.Writer
	width int
	// Color enables ANSI bold for headings and emphasized runs.
	Color bool
}

// NewPrinter creates a Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, width: panelWidth}
}

// printBox prints a boxed panel title
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string) {
	title = sanitizeText(title)
	border := strings.Repeat("─", p.width-2)
	pad := p.width - 4 - utf8.RuneCountInString(title)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s%s │\n", title, strings.Repeat(" ", pad))
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintPanel prints a titled panel followed by its fragments.
func (p *Printer) PrintPanel(title string, fragments []types.Fragment) {
	p.printBox(title)
	for _, f := range fragments {
		p.printFragment(f, "")
	}
	fmt.Fprintln(p.out) //nolint:errcheck
}

// PrintResume prints the resume panel. The contact block is separated by a rule.
func (p *Printer) PrintResume(title string, view ResumeView) {
	p.printBox(title)
	if view.Warning != nil {
		p.writeLine("(no sections detected, showing raw text)")
	}
	for _, section := range view.Sections {
		for _, f := range section {
			p.printFragment(f, "")
		}
		p.writeLine("")
	}
	for _, f := range view.Fallback {
		p.printFragment(f, "")
	}
	if len(view.Contact) > 0 {
		p.writeLine(strings.Repeat("─", p.width/2))
		for _, f := range view.Contact {
			p.printFragment(f, "")
		}
	}
	fmt.Fprintln(p.out) //nolint:errcheck
}

func (p *Printer) printFragment(f types.Fragment, indent string) {
	f = sanitizeFragment(f)
	switch f.Kind {
	case types.FragmentHeading, types.FragmentContactName:
		p.writeLine(indent + p.bold(f.Text))
	case types.FragmentParagraph:
		p.writeRuns(indent, indent, f.Runs)
		p.writeLine("")
	case types.FragmentBullet:
		p.writeRuns(indent+"  • ", indent+"    ", []types.Run{{Text: f.Text}})
	case types.FragmentTableRow:
		p.writeLine(indent + p.bold(f.Text))
		for _, d := range f.Details {
			p.writeLine(indent + "    " + d)
		}
	case types.FragmentTagList:
		tags := make([]string, len(f.Tags))
		for i, tag := range f.Tags {
			tags[i] = "[" + tag + "]"
		}
		p.writeRuns(indent, indent, []types.Run{{Text: strings.Join(tags, " ")}})
	case types.FragmentGroup:
		for _, c := range f.Children {
			if c.Kind == types.FragmentHeading {
				p.writeLine(indent + p.bold(c.Text+":"))
				continue
			}
			p.printFragment(c, indent)
		}
	default:
		p.writeLine(indent + f.Text)
	}
}

// writeRuns word-wraps runs at the printer width. first prefixes the first line,
// rest prefixes continuation lines.
func (p *Printer) writeRuns(first, rest string, runs []types.Run) {
	line := first
	lineLen := utf8.RuneCountInString(first)
	empty := true

	for _, w := range splitWords(runs) {
		wordLen := utf8.RuneCountInString(w.text)
		if w.spaced && !empty {
			if lineLen+1+wordLen > p.width {
				p.writeLine(line)
				line, lineLen = rest, utf8.RuneCountInString(rest)
			} else {
				line += " "
				lineLen++
			}
		}
		text := w.text
		if w.emphasis {
			text = p.bold(text)
		}
		line += text
		lineLen += wordLen
		empty = false
	}
	if !empty {
		p.writeLine(line)
	}
}

// word is a whitespace-free piece of a run. spaced is false when the word continues the
// previous one, as with punctuation following an emphasized span.
type word struct {
	text     string
	emphasis bool
	spaced   bool
}

func splitWords(runs []types.Run) []word {
	var words []word
	spaced := true
	for _, run := range runs {
		text := run.Text
		for text != "" {
			trimmed := strings.TrimLeft(text, " \t\n")
			if len(trimmed) < len(text) {
				spaced = true
			}
			if trimmed == "" {
				break
			}
			end := strings.IndexAny(trimmed, " \t\n")
			if end < 0 {
				end = len(trimmed)
			}
			words = append(words, word{text: trimmed[:end], emphasis: run.Emphasis, spaced: spaced})
			spaced = false
			text = trimmed[end:]
		}
	}
	return words
}

// sanitizeText drops control characters so service text cannot emit its own terminal
// escape sequences. Tabs and newlines are kept.
func sanitizeText(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n':
			return r
		case r < 0x20, r == 0x7f, r >= 0x80 && r <= 0x9f:
			return -1
		}
		return r
	}, s)
}

func sanitizeFragment(f types.Fragment) types.Fragment {
	f.Text = sanitizeText(f.Text)
	if f.Runs != nil {
		runs := make([]types.Run, len(f.Runs))
		for i, r := range f.Runs {
			runs[i] = types.Run{Text: sanitizeText(r.Text), Emphasis: r.Emphasis}
		}
		f.Runs = runs
	}
	f.Details = sanitizeAll(f.Details)
	f.Tags = sanitizeAll(f.Tags)
	if f.Children != nil {
		children := make([]types.Fragment, len(f.Children))
		for i, c := range f.Children {
			children[i] = sanitizeFragment(c)
		}
		f.Children = children
	}
	return f
}

func sanitizeAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = sanitizeText(v)
	}
	return out
}

func (p *Printer) bold(s string) string {
	if !p.Color || s == "" {
		return s
	}
	return ansiBold + s + ansiReset
}

func (p *Printer) writeLine(s string) {
	fmt.Fprintln(p.out, s) //nolint:errcheck
}
