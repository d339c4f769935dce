package app

import (
	"log/slog"

	"github.com/dshills/docshell/internal/action"
)

// Window receives the computed window title.
type Window interface {
	SetTitle(title string)
}

// Coordinator runs the refresh cascade after every state change. It is
// the only writer of the window title and of action enabled flags.
type Coordinator struct {
	appTitle    string
	dirtyMarker string

	source   action.DocumentSource
	registry *action.Registry
	window   Window
	logger   *slog.Logger

	title     string
	refreshes int
}

// NewCoordinator creates a coordinator for the given window. The registry
// is attached later with SetRegistry since it needs the coordinator too.
func NewCoordinator(appTitle, dirtyMarker string, source action.DocumentSource, window Window, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		appTitle:    appTitle,
		dirtyMarker: dirtyMarker,
		source:      source,
		window:      window,
		logger:      WithComponent(logger, "coordinator"),
		title:       appTitle,
	}
}

// SetRegistry attaches the action registry refreshed by the cascade.
func (c *Coordinator) SetRegistry(r *action.Registry) {
	c.registry = r
}

// SetWindow replaces the window. The next Refresh writes its title.
func (c *Coordinator) SetWindow(w Window) {
	c.window = w
}

// Refresh re-renders the current document, recomputes the window title
// and refreshes every action.
func (c *Coordinator) Refresh() {
	c.refreshes++

	doc := c.source.CurrentDocument()
	title := c.appTitle
	if doc != nil {
		doc.Refresh()
		name := doc.Title()
		if doc.IsDirty() {
			name += c.dirtyMarker
		}
		title = name + " - " + c.appTitle
	}

	c.title = title
	if c.window != nil {
		c.window.SetTitle(title)
	}
	if c.registry != nil {
		c.registry.RefreshAll()
	}

	c.logger.Debug("refresh", "title", title, "count", c.refreshes)
}

// Title returns the title computed by the last Refresh.
func (c *Coordinator) Title() string {
	return c.title
}

// Refreshes returns how many times Refresh has run.
func (c *Coordinator) Refreshes() int {
	return c.refreshes
}
