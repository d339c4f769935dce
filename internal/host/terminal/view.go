package terminal

import "github.com/dshills/docshell/internal/document"

// View holds the last contents rendered for one document. The host draws
// the current document's view into the body area.
type View struct {
	host     *Host
	contents string
	renders  int
}

// Render stores contents and schedules a redraw.
func (v *View) Render(contents string) {
	v.contents = contents
	v.renders++
	v.host.needsDraw = true
}

// Contents returns the last rendered contents.
func (v *View) Contents() string {
	return v.contents
}

var _ document.View = (*View)(nil)
