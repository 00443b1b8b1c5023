package types

// FragmentKind identifies the variant held by a Fragment.
type FragmentKind string

const (
	FragmentHeading     FragmentKind = "heading"
	FragmentParagraph   FragmentKind = "paragraph"
	FragmentBullet      FragmentKind = "bullet"
	FragmentTableRow    FragmentKind = "table_row"
	FragmentTagList     FragmentKind = "tag_list"
	FragmentGroup       FragmentKind = "group"
	FragmentContactName FragmentKind = "contact_name"
	FragmentContactLine FragmentKind = "contact_line"
)

// Run is a span of paragraph text. Emphasis marks text that was wrapped in ** markers.
type Run struct {
	Text     string `json:"text"`
	Emphasis bool   `json:"emphasis,omitempty"`
}

// Fragment is a render-agnostic unit of display content.
// Which fields are meaningful depends on Kind:
//   - heading, bullet, contact_name, contact_line: Text
//   - paragraph: Runs
//   - table_row: Text (primary label) and Details
//   - tag_list: Tags
//   - group: Children (a heading followed by its paragraph)
type Fragment struct {
	Kind     FragmentKind `json:"kind"`
	Text     string       `json:"text,omitempty"`
	Runs     []Run        `json:"runs,omitempty"`
	Details  []string     `json:"details,omitempty"`
	Tags     []string     `json:"tags,omitempty"`
	Children []Fragment   `json:"children,omitempty"`
}

// Heading creates a heading fragment.
func Heading(text string) Fragment {
	return Fragment{Kind: FragmentHeading, Text: text}
}

// Paragraph creates a paragraph fragment from runs.
func Paragraph(runs ...Run) Fragment {
	return Fragment{Kind: FragmentParagraph, Runs: runs}
}

// PlainParagraph creates a paragraph holding a single unemphasized run.
func PlainParagraph(text string) Fragment {
	return Paragraph(Run{Text: text})
}

// Bullet creates a bulleted item fragment.
func Bullet(text string) Fragment {
	return Fragment{Kind: FragmentBullet, Text: text}
}

// TableRow creates a tabular job entry fragment.
func TableRow(title string, details []string) Fragment {
	return Fragment{Kind: FragmentTableRow, Text: title, Details: details}
}

// TagList creates a tag list fragment.
func TagList(tags []string) Fragment {
	return Fragment{Kind: FragmentTagList, Tags: tags}
}

// Group creates a fragment that renders its children together.
func Group(children ...Fragment) Fragment {
	return Fragment{Kind: FragmentGroup, Children: children}
}

// ContactName creates the heading line of a contact block.
func ContactName(text string) Fragment {
	return Fragment{Kind: FragmentContactName, Text: text}
}

// ContactLine creates a plain line of a contact block.
func ContactLine(text string) Fragment {
	return Fragment{Kind: FragmentContactLine, Text: text}
}
