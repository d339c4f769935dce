// Package terminal runs a docshell window in a terminal using tcell.
//
// The screen is laid out top to bottom as the window title, the document
// tabs, the toolbar, the current document's body and a status line that
// doubles as the prompt for dialogs.
package terminal

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/docshell/internal/action"
	"github.com/dshills/docshell/internal/document"
	"github.com/dshills/docshell/internal/workspace"
)

// Controller is the application driven by the host.
type Controller interface {
	Trigger(shortcut string) (handled bool, err error)
	Quitting() bool
	Registry() *action.Registry
	Workspace() *workspace.Workspace
}

// Styles used when drawing.
var (
	styleTitle    = tcell.StyleDefault.Reverse(true).Bold(true)
	styleTab      = tcell.StyleDefault
	styleTabFocus = tcell.StyleDefault.Reverse(true)
	styleEnabled  = tcell.StyleDefault.Bold(true)
	styleDisabled = tcell.StyleDefault.Dim(true)
	styleBody     = tcell.StyleDefault
	styleStatus   = tcell.StyleDefault.Italic(true)
)

// bodyTop is the first row of the document body.
const bodyTop = 3

// PaletteKey opens the command palette unless an action is bound to it.
const PaletteKey = "Ctrl+P"

// paletteMaxDistance is the edit distance tolerated by palette queries.
const paletteMaxDistance = 2

// Host owns a tcell screen and implements the window, view, dialog and
// confirmation collaborators on top of it.
type Host struct {
	screen tcell.Screen
	ctl    Controller
	logger *slog.Logger

	title     string
	status    string
	needsDraw bool
}

// New creates a host on an initialized screen. A nil logger discards output.
func New(screen tcell.Screen, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Host{
		screen: screen,
		logger: logger.With("component", "terminal"),
	}
}

// NewScreen creates and initializes a terminal screen.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnablePaste()
	return screen, nil
}

// Screen returns the underlying screen.
func (h *Host) Screen() tcell.Screen {
	return h.screen
}

// Size returns the screen size in cells.
func (h *Host) Size() (width, height int) {
	return h.screen.Size()
}

// NewView creates the view for doc. It is used as the workspace's view factory.
func (h *Host) NewView(*document.Document) document.View {
	return &View{host: h}
}

// SetTitle records the window title and sets the terminal title.
func (h *Host) SetTitle(title string) {
	h.title = title
	h.screen.SetTitle(title)
	h.needsDraw = true
}

// Title returns the last title set.
func (h *Host) Title() string {
	return h.title
}

// Status returns the status line text.
func (h *Host) Status() string {
	return h.status
}

// SetStatus replaces the status line text.
func (h *Host) SetStatus(s string) {
	h.status = s
	h.needsDraw = true
}

// Interrupt makes Run return. It is safe to call from another goroutine.
func (h *Host) Interrupt() {
	_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Run draws the window and dispatches key events until ctl quits, the
// host is interrupted or the screen stops delivering events.
func (h *Host) Run(ctl Controller) error {
	h.ctl = ctl
	defer func() { h.ctl = nil }()

	h.draw()
	for !ctl.Quitting() {
		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventInterrupt:
			h.logger.Info("interrupted")
			return nil
		case *tcell.EventResize:
			h.screen.Sync()
			h.needsDraw = true
		case *tcell.EventKey:
			h.handleKey(ev)
		}
		if h.needsDraw {
			h.draw()
		}
	}
	return nil
}

func (h *Host) handleKey(ev *tcell.EventKey) {
	name := KeyName(ev)
	if name == "" {
		return
	}

	handled, err := h.ctl.Trigger(name)
	if !handled {
		if name == PaletteKey {
			h.runPalette()
			return
		}
		h.logger.Debug("unbound key", "key", name)
		return
	}
	h.report(err)
}

// report shows the outcome of an action on the status line.
func (h *Host) report(err error) {
	switch {
	case err == nil, document.IsCancelled(err):
		h.SetStatus("")
	case errors.Is(err, action.ErrDisabled):
		h.SetStatus(err.Error())
	default:
		h.SetStatus("Error: " + err.Error())
	}
}

// runPalette asks for an action label and executes the closest match.
// Enabled matches are preferred; a disabled best match reports why it
// cannot run.
func (h *Host) runPalette() {
	query, ok := h.prompt("Command: ", "")
	if !ok {
		h.SetStatus("")
		return
	}

	matches := h.ctl.Registry().Find(query, paletteMaxDistance, 0)
	if len(matches) == 0 {
		h.SetStatus(fmt.Sprintf("No command matches %q", query))
		return
	}

	best := matches[0].Action
	for _, m := range matches {
		if m.Action.Enabled() {
			best = m.Action
			break
		}
	}
	h.logger.Debug("palette", "query", query, "action", best.Label())
	h.report(best.Execute())
}

// draw repaints the whole screen.
func (h *Host) draw() {
	h.screen.Clear()
	h.screen.HideCursor()
	width, height := h.screen.Size()

	h.fillRow(0, width, styleTitle)
	h.drawText(0, 0, width, h.title, styleTitle)

	if h.ctl != nil {
		h.drawTabs(1, width)
		h.drawToolbar(2, width)
		h.drawBody(height-bodyTop-1, width)
	}

	if height > bodyTop {
		status := h.status
		if status == "" && h.ctl != nil {
			status = unsavedSummary(h.ctl.Workspace())
		}
		h.drawText(0, height-1, width, status, styleStatus)
	}
	h.screen.Show()
	h.needsDraw = false
}

func (h *Host) drawTabs(y, width int) {
	ws := h.ctl.Workspace()
	x := 0
	for i, doc := range ws.Documents() {
		label := " " + doc.Title()
		if doc.IsDirty() {
			label += "*"
		}
		label += " "

		style := styleTab
		if i == ws.CurrentIndex() {
			style = styleTabFocus
		}
		x = h.drawText(x, y, width, label, style)
		x = h.drawText(x, y, width, "|", styleTab)
	}
}

func (h *Host) drawToolbar(y, width int) {
	x := 0
	for _, a := range h.ctl.Registry().All() {
		label := a.Label()
		if d := a.Detail(); d != "" {
			label += " (" + d + ")"
		}
		if a.Shortcut() != "" {
			label = "[" + a.Shortcut() + "] " + label
		}

		style := styleDisabled
		if a.Enabled() {
			style = styleEnabled
		}
		x = h.drawText(x, y, width, label, style)
		x = h.drawText(x, y, width, "  ", styleBody)
	}
}

// unsavedSummary lists the documents with unsaved changes, or "".
func unsavedSummary(ws *workspace.Workspace) string {
	dirty := ws.DirtyDocuments()
	if len(dirty) == 0 {
		return ""
	}
	titles := make([]string, len(dirty))
	for i, doc := range dirty {
		titles[i] = doc.Title()
	}
	return "Unsaved: " + strings.Join(titles, ", ")
}

func (h *Host) drawBody(rows, width int) {
	doc := h.ctl.Workspace().CurrentDocument()
	if doc == nil || rows <= 0 {
		return
	}
	view, ok := doc.View().(*View)
	if !ok {
		return
	}

	lines := strings.Split(view.Contents(), "\n")
	for i, line := range lines {
		if i >= rows {
			break
		}
		h.drawText(0, bodyTop+i, width, line, styleBody)
	}
}

func (h *Host) fillRow(y, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		h.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawText draws s from column x, clipped at width, and returns the
// column after the last cell drawn.
func (h *Host) drawText(x, y, width int, s string, style tcell.Style) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if x+w > width {
			break
		}
		runes := g.Runes()
		h.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}

// AskOpenPath prompts for a file to open.
func (h *Host) AskOpenPath() (string, bool) {
	return h.prompt("Open file: ", "")
}

// AskSavePath prompts for a file to save to, prefilled with suggested.
func (h *Host) AskSavePath(suggested, filter string) (string, bool) {
	label := "Save as: "
	if filter != "" {
		label = fmt.Sprintf("Save as (%s): ", filter)
	}
	return h.prompt(label, suggested)
}

// ConfirmUnsavedChanges asks whether to save title before closing it.
func (h *Host) ConfirmUnsavedChanges(title string) document.Choice {
	question := fmt.Sprintf("Save changes to %q? [y]es [n]o [c]ancel", title)
	for {
		h.drawPrompt(question)
		ev, ok := h.nextKey()
		if !ok {
			return document.ChoiceCancel
		}
		if ev.Key() == tcell.KeyEscape {
			return document.ChoiceCancel
		}
		if ev.Key() != tcell.KeyRune {
			continue
		}
		switch ev.Rune() {
		case 'y', 'Y':
			return document.ChoiceSave
		case 'n', 'N':
			return document.ChoiceDiscard
		case 'c', 'C':
			return document.ChoiceCancel
		}
	}
}

// prompt reads a line on the status row. Esc or an empty answer cancels.
func (h *Host) prompt(label, initial string) (string, bool) {
	input := []rune(initial)
	for {
		h.drawPrompt(label + string(input))
		ev, ok := h.nextKey()
		if !ok {
			return "", false
		}

		switch ev.Key() {
		case tcell.KeyEscape:
			return "", false
		case tcell.KeyEnter:
			answer := strings.TrimSpace(string(input))
			return answer, answer != ""
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
		case tcell.KeyCtrlU:
			input = input[:0]
		case tcell.KeyRune:
			input = append(input, ev.Rune())
		}
	}
}

// nextKey waits for the next key event, handling resizes on the way.
// ok is false if the screen has stopped.
func (h *Host) nextKey() (*tcell.EventKey, bool) {
	for {
		switch ev := h.screen.PollEvent().(type) {
		case nil:
			return nil, false
		case *tcell.EventKey:
			return ev, true
		case *tcell.EventResize:
			h.screen.Sync()
		}
	}
}

func (h *Host) drawPrompt(text string) {
	saved := h.status
	h.status = text
	h.draw()
	h.status = saved

	_, height := h.screen.Size()
	h.screen.ShowCursor(uniseg.StringWidth(text), height-1)
	h.screen.Show()
}

// Close finalizes the screen.
func (h *Host) Close() {
	h.screen.Fini()
}
