package rendering

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/jonathan/resume-roaster/internal/types"
)

//go:embed templates/fragments.gohtml
var fragmentsSource string

// fragmentTemplates escape every text field. Emphasis spans come from Run data only.
var fragmentTemplates = template.Must(template.New("fragments.gohtml").Parse(fragmentsSource))

// HTML renders fragments as an HTML snippet.
func HTML(fragments []types.Fragment) (template.HTML, error) {
	return execute("fragments", fragments)
}

// ResumeHTML renders the resume panel: sections, raw-text fallback, and the contact footer.
func ResumeHTML(view ResumeView) (template.HTML, error) {
	return execute("resume", view)
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := fragmentTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", &RenderError{Message: "failed to execute " + name + " template", Cause: err}
	}
	//nolint:gosec // output of html/template, already escaped
	return template.HTML(buf.String()), nil
}
