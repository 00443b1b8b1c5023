package segment

import "fmt"

// ParseWarning is a non-fatal signal that the heuristics found no structure in the text.
type ParseWarning struct {
	Message string
	Lines   int
}

func (w *ParseWarning) Error() string {
	return fmt.Sprintf("parse warning: %s (%d lines)", w.Message, w.Lines)
}
