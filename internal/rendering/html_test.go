package rendering

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestHTML_RoastFragments(t *testing.T) {
	out, err := HTML(FormatRoast("**Summary**:Great start.\n\nYou **over-used** adjectives."))
	require.NoError(t, err)

	doc := parseHTML(t, string(out))
	assert.Equal(t, "Summary:", doc.Find(".group h4.heading").Text())
	assert.Equal(t, "Great start.", doc.Find(".group p.paragraph").Text())
	assert.Equal(t, "over-used", doc.Find("p.paragraph span.emphasis").Text())
	assert.Equal(t, 2, doc.Find("p.paragraph").Length())
}

func TestHTML_EscapesUntrustedText(t *testing.T) {
	out, err := HTML(FormatRoast(`**<img src=x onerror=alert(1)>** <script>alert(2)</script>`))
	require.NoError(t, err)

	html := string(out)
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<img")
	assert.Contains(t, html, "&lt;script&gt;")

	doc := parseHTML(t, html)
	assert.Equal(t, 0, doc.Find("script, img").Length())
	assert.Equal(t, "<img src=x onerror=alert(1)>", doc.Find("span.emphasis").Text())
}

func TestResumeHTML(t *testing.T) {
	view := RenderResumeText("Experience\n  Engineer | Acme Corp | 2020-2023\n  • Led a team of five\nTechnical Skills\n  Go, Rust\n\nJane Doe\n+1 555 0100")

	out, err := ResumeHTML(view)
	require.NoError(t, err)

	doc := parseHTML(t, string(out))
	assert.Equal(t, 2, doc.Find("section.resume-section").Length())
	assert.Equal(t, "Engineer", doc.Find(".table-row .table-title").Text())
	assert.Equal(t, 2, doc.Find(".table-row .table-detail").Length())
	assert.Equal(t, "Led a team of five", doc.Find(".bullet span").Last().Text())

	var tags []string
	doc.Find(".tags .tag").Each(func(_ int, s *goquery.Selection) {
		tags = append(tags, s.Text())
	})
	assert.Equal(t, []string{"Go", "Rust"}, tags)

	assert.Equal(t, "Jane Doe", doc.Find("footer.contact .contact-name").Text())
	assert.Equal(t, "+1 555 0100", doc.Find("footer.contact .contact-line").Text())
}

func TestResumeHTML_Fallback(t *testing.T) {
	out, err := ResumeHTML(RenderResumeText("  no structure at all"))
	require.NoError(t, err)

	doc := parseHTML(t, string(out))
	assert.Equal(t, 0, doc.Find("section.resume-section").Length())
	assert.Equal(t, "no structure at all", doc.Find("section.resume-raw p").Text())
}

func TestHTML_Empty(t *testing.T) {
	out, err := HTML(nil)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(string(out)))
}

func TestRenderError(t *testing.T) {
	err := &RenderError{Message: "boom"}
	assert.Equal(t, "render error: boom", err.Error())
	assert.Nil(t, err.Unwrap())

	_, execErr := execute("missing", nil)
	var renderErr *RenderError
	require.ErrorAs(t, execErr, &renderErr)
	assert.Error(t, renderErr.Unwrap())
}
